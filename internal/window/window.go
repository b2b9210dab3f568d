// Package window owns the visibility state of the application windows.
package window

import "errors"

// Window labels known to the host.
const (
	MainLabel    = "main"
	OverlayLabel = "overlay"
)

// Toggle entry texts. The text always names the next available action.
const (
	LabelShowWindow   = "Show window"
	LabelReduceToTray = "Reduce to system tray"
)

// ErrNoWindow is returned by hosts for operations on a destroyed window.
var ErrNoWindow = errors.New("window not found")

// Visibility is the logical visibility of the main window.
type Visibility int

const (
	// Visible means the main window is shown. This is the state at startup.
	Visible Visibility = iota
	// Hidden means the main window only lives in the tray.
	Hidden
)

// String returns the string representation of Visibility.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// LabelFor returns the toggle entry text for a visibility state.
func LabelFor(v Visibility) string {
	if v == Hidden {
		return LabelShowWindow
	}
	return LabelReduceToTray
}

// Window is a native top-level window managed by the host.
type Window interface {
	Show() error
	Hide() error
	SetFocus() error
	SetFullscreen(fullscreen bool) error
	SetTitle(title string) error
	IsVisible() (bool, error)
}

// Host looks up the native windows created at setup.
type Host interface {
	Window(label string) (Window, bool)
}

// LabelSink receives the toggle entry text. The tray implements it.
type LabelSink interface {
	SetToggleText(text string) error
}
