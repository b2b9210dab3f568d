package platform

import (
	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/window"
)

// SessionOptions configures the native windows created at setup.
type SessionOptions struct {
	Title  string
	Width  int
	Height int
	// Post receives window events (close requests, focus changes).
	Post func(events.Event)
}

// Session bundles the native window host and foreground window ops.
type Session struct {
	Host window.Host
	Ops  WindowOps

	loop  func()
	close func()
}

// EventLoop delivers native window events until Close. Headless sessions
// return immediately.
func (s *Session) EventLoop() {
	if s.loop != nil {
		s.loop()
	}
}

// Close releases the native connection.
func (s *Session) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewHeadlessSession returns a session without native windows.
func NewHeadlessSession(ops WindowOps) *Session {
	if ops == nil {
		ops = noopOps{}
	}
	return &Session{
		Host: window.NewHeadlessHost(window.MainLabel, window.OverlayLabel),
		Ops:  ops,
	}
}
