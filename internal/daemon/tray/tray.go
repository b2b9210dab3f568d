package tray

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/logger"
	"github.com/ddemile/soundboard/internal/window"
)

// Menu entry ids.
const (
	ToggleID = "toggle_window"
	QuitID   = "quit"
)

// Actions is what the tray triggers on the window state machine.
type Actions interface {
	Toggle()
	ShowAndFocus()
}

// Options configures the tray at construction.
type Options struct {
	Tooltip string
	Icon    []byte
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

// Controller owns the tray icon and its menu. Clicks are posted as events
// and handled by Dispatch on the dispatcher goroutine.
type Controller struct {
	backend Backend
	actions Actions
	post    func(events.Event)
	opts    Options
	log     zerolog.Logger

	mu     sync.Mutex
	toggle Item
	text   string
	built  bool
}

var _ window.LabelSink = (*Controller)(nil)

// New creates a tray controller. Nothing is shown until Run.
func New(backend Backend, actions Actions, post func(events.Event), opts Options) *Controller {
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if len(opts.Icon) == 0 {
		opts.Icon = iconData
	}
	return &Controller{
		backend: backend,
		actions: actions,
		post:    post,
		opts:    opts,
		log:     logger.Component("tray"),
		text:    window.LabelReduceToTray,
	}
}

// Run starts the native tray. This blocks the calling goroutine (must be main).
// onReady is called once the menu is built, onExit when the tray exits.
// A menu that cannot be built is fatal.
func (c *Controller) Run(onReady, onExit func()) {
	c.backend.Run(func() {
		if err := c.build(); err != nil {
			logger.Fatal("failed to build tray", err)
		}
		if onReady != nil {
			onReady()
		}
	}, onExit)
}

// Quit signals the tray to exit.
func (c *Controller) Quit() {
	c.backend.Quit()
}

func (c *Controller) build() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return errors.New("tray already built")
	}
	if len(c.opts.Icon) == 0 {
		return errors.New("tray icon is empty")
	}

	c.backend.SetIcon(c.opts.Icon)
	c.backend.SetTooltip(c.opts.Tooltip)

	toggle := c.backend.AddItem(c.text, "Show or hide the main window", func() {
		c.post(events.MenuActivated{ID: ToggleID})
	})
	c.backend.AddSeparator()
	quit := c.backend.AddItem("Quit", "Quit Soundboard", func() {
		c.post(events.MenuActivated{ID: QuitID})
	})
	if toggle == nil || quit == nil {
		return fmt.Errorf("failed to create menu items")
	}

	c.backend.OnIconClick(func() {
		c.post(events.TrayClick{})
	})

	c.toggle = toggle
	c.built = true
	return nil
}

// SetToggleText changes the toggle entry text in place. Only the window
// state machine calls it.
func (c *Controller) SetToggleText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = text
	if c.toggle == nil {
		// Applied when the menu is built.
		return nil
	}
	c.toggle.SetTitle(text)
	return nil
}

// ToggleText returns the current toggle entry text.
func (c *Controller) ToggleText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// SetTooltip updates the icon tooltip.
func (c *Controller) SetTooltip(text string) {
	c.mu.Lock()
	c.opts.Tooltip = text
	built := c.built
	c.mu.Unlock()

	if built {
		c.backend.SetTooltip(text)
	}
}

// Dispatch handles tray events. It reports whether ev was consumed.
func (c *Controller) Dispatch(ev events.Event) bool {
	switch e := ev.(type) {
	case events.TrayClick:
		c.actions.ShowAndFocus()
		return true
	case events.MenuActivated:
		switch e.ID {
		case ToggleID:
			c.actions.Toggle()
		case QuitID:
			c.log.Info().Msg("quit requested from tray")
			c.opts.Exit(0)
		default:
			c.log.Debug().Str("id", e.ID).Msg("unknown menu entry")
		}
		return true
	}
	return false
}
