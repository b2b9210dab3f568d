package window

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/logger"
)

// Controller is the visibility state machine of the main window.
//
// The logical state is authoritative: OS calls that fail are logged and the
// transition is kept, so the next user action re-issues the call. Nothing
// else may show or hide the main window.
type Controller struct {
	host Host
	log  zerolog.Logger

	mu         sync.Mutex
	visibility Visibility
	label      string
	sink       LabelSink
}

// NewController creates a controller for the host's main window.
// The window starts Visible, matching how the host creates it.
func NewController(host Host) *Controller {
	return &Controller{
		host:       host,
		log:        logger.Component("window"),
		visibility: Visible,
	}
}

// AttachLabel sets where the toggle entry text is written.
func (c *Controller) AttachLabel(sink LabelSink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

// Init writes the label for the initial state. Call once the tray is built.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLabelLocked(LabelFor(c.visibility))
}

// Visibility returns the current logical visibility.
func (c *Controller) Visibility() Visibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility
}

// Label returns the last text written to the toggle entry.
func (c *Controller) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// Toggle hides a visible window or shows and focuses a hidden one.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.visibility == Visible {
		c.hideLocked()
		return
	}
	c.showLocked()
}

// ShowAndFocus makes the window visible if needed and requests focus.
// On a visible window it only re-requests focus.
func (c *Controller) ShowAndFocus() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.visibility == Visible {
		c.call("set_focus", func(w Window) error { return w.SetFocus() })
		c.setLabelLocked(LabelReduceToTray)
		return
	}
	c.showLocked()
}

// OnCloseRequested hides the window instead of letting it close. Closing the
// window never ends the process.
func (c *Controller) OnCloseRequested() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideLocked()
}

// OnFocused resets the label when the visible window gains focus through
// means other than the controller, e.g. a click on the window itself.
func (c *Controller) OnFocused(focused bool) {
	if !focused {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visibility == Visible {
		c.setLabelLocked(LabelReduceToTray)
	}
}

// Dispatch handles main window events. It reports whether ev was consumed.
func (c *Controller) Dispatch(ev events.Event) bool {
	switch e := ev.(type) {
	case events.CloseRequested:
		if e.Window != MainLabel {
			return false
		}
		c.OnCloseRequested()
		return true
	case events.Focused:
		if e.Window != MainLabel {
			return false
		}
		c.OnFocused(e.Focused)
		return true
	}
	return false
}

func (c *Controller) hideLocked() {
	c.call("hide", func(w Window) error { return w.Hide() })
	c.visibility = Hidden
	c.setLabelLocked(LabelShowWindow)
}

func (c *Controller) showLocked() {
	c.call("show", func(w Window) error { return w.Show() })
	c.call("set_focus", func(w Window) error { return w.SetFocus() })
	c.visibility = Visible
	c.setLabelLocked(LabelReduceToTray)
}

// call runs op against the main window. A missing window or a failing call
// is logged and otherwise ignored.
func (c *Controller) call(name string, op func(Window) error) {
	w, ok := c.host.Window(MainLabel)
	if !ok {
		c.log.Debug().Str("op", name).Msg("main window not found")
		return
	}
	if err := op(w); err != nil {
		c.log.Warn().Err(err).Str("op", name).Msg("window call failed")
	}
}

func (c *Controller) setLabelLocked(text string) {
	c.label = text
	if c.sink == nil {
		return
	}
	if err := c.sink.SetToggleText(text); err != nil {
		c.log.Warn().Err(err).Str("text", text).Msg("failed to update tray label")
	}
}
