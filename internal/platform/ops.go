// Package platform contains the OS-specific window operations: foreign focus
// capture, display server detection, and the native window host.
package platform

import "fmt"

// WindowHandle is an opaque, platform-specific identifier for a window that
// may belong to another process (an HWND on Windows, an X11 window id on
// Linux). Zero means no window.
type WindowHandle uintptr

// String formats the handle the way native tools print window ids.
func (h WindowHandle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// WindowOps abstracts the foreground-window capability of the OS.
// Implementations are selected at build time; platforms without a
// foreground-window concept get noopOps.
type WindowOps interface {
	// Available reports whether the platform supports foreground tracking.
	Available() bool
	// ForegroundWindow returns the window that currently has input focus,
	// or zero if none can be determined.
	ForegroundWindow() (WindowHandle, error)
	// SetForegroundWindow asks the OS to give h input focus again.
	SetForegroundWindow(h WindowHandle) error
}

type noopOps struct{}

var _ WindowOps = noopOps{}

func (noopOps) Available() bool                         { return false }
func (noopOps) ForegroundWindow() (WindowHandle, error) { return 0, nil }
func (noopOps) SetForegroundWindow(WindowHandle) error  { return nil }

// NoopOps returns WindowOps that never report or change focus.
func NoopOps() WindowOps {
	return noopOps{}
}
