package window

import (
	"sync"

	"github.com/ddemile/soundboard/internal/logger"
)

// HeadlessHost is used where no native window backend is available. Its
// windows only track their state, so the controller and tray keep working.
type HeadlessHost struct {
	mu      sync.Mutex
	windows map[string]*HeadlessWindow
}

// NewHeadlessHost creates a host with one headless window per label.
func NewHeadlessHost(labels ...string) *HeadlessHost {
	h := &HeadlessHost{windows: make(map[string]*HeadlessWindow, len(labels))}
	for _, label := range labels {
		h.windows[label] = &HeadlessWindow{label: label, visible: label == MainLabel}
	}
	return h
}

// Window returns the window with the given label.
func (h *HeadlessHost) Window(label string) (Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[label]
	if !ok {
		return nil, false
	}
	return w, true
}

// HeadlessWindow records the calls made to it.
type HeadlessWindow struct {
	label string

	mu         sync.Mutex
	visible    bool
	fullscreen bool
	title      string
	focusReqs  int
}

// Show marks the window visible.
func (w *HeadlessWindow) Show() error {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	logger.Debugf("headless %s: show", w.label)
	return nil
}

// Hide marks the window hidden.
func (w *HeadlessWindow) Hide() error {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	logger.Debugf("headless %s: hide", w.label)
	return nil
}

// SetFocus counts the focus request.
func (w *HeadlessWindow) SetFocus() error {
	w.mu.Lock()
	w.focusReqs++
	w.mu.Unlock()
	return nil
}

// SetFullscreen records the fullscreen flag.
func (w *HeadlessWindow) SetFullscreen(fullscreen bool) error {
	w.mu.Lock()
	w.fullscreen = fullscreen
	w.mu.Unlock()
	return nil
}

// SetTitle records the title.
func (w *HeadlessWindow) SetTitle(title string) error {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
	return nil
}

// IsVisible reports the recorded visibility.
func (w *HeadlessWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible, nil
}

// FocusRequests returns how many times SetFocus was called.
func (w *HeadlessWindow) FocusRequests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focusReqs
}

// Fullscreen reports the recorded fullscreen flag.
func (w *HeadlessWindow) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// Title returns the recorded title.
func (w *HeadlessWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}
