package platform

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/ddemile/soundboard/internal/logger"
)

// FocusTracker remembers the foreign window that had focus before an
// excursion of ours (the overlay) took it, so it can be handed back.
//
// The tracker has a single slot: a new capture overwrites the previous one
// and nested capture/restore pairs are not supported.
type FocusTracker struct {
	ops WindowOps
	log zerolog.Logger

	mu   sync.Mutex
	last WindowHandle
}

// NewFocusTracker creates a tracker on top of the platform window ops.
func NewFocusTracker(ops WindowOps) *FocusTracker {
	if ops == nil {
		ops = noopOps{}
	}
	return &FocusTracker{
		ops: ops,
		log: logger.Component("focus"),
	}
}

// Capture stores the current foreground window. When no window can be
// determined the slot is left untouched.
func (t *FocusTracker) Capture() {
	if !t.ops.Available() {
		return
	}

	h, err := t.ops.ForegroundWindow()
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to read foreground window")
		return
	}
	if h == 0 {
		t.log.Debug().Msg("no foreground window to store")
		return
	}

	t.mu.Lock()
	t.last = h
	t.mu.Unlock()

	t.log.Debug().Stringer("window", h).Msg("stored last window")
}

// Restore asks the OS to focus the stored window again. The slot is kept,
// so a second Restore targets the same window.
func (t *FocusTracker) Restore() {
	if !t.ops.Available() {
		return
	}

	t.mu.Lock()
	h := t.last
	t.mu.Unlock()

	if h == 0 {
		t.log.Debug().Msg("no stored window to refocus")
		return
	}

	if err := t.ops.SetForegroundWindow(h); err != nil {
		t.log.Warn().Err(err).Stringer("window", h).Msg("failed to refocus window")
		return
	}
	t.log.Debug().Stringer("window", h).Msg("refocused window")
}

// Last returns the stored window, if any.
func (t *FocusTracker) Last() (WindowHandle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.last != 0
}
