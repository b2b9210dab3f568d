// Package events defines the inputs delivered to the application dispatcher.
//
// Native callbacks (tray, window system, instance server, file watcher) never
// touch application state directly. They post one of these values and the
// dispatcher hands it to each component's Dispatch method in turn.
package events

import "fmt"

// Event is a single input from the host environment.
type Event interface {
	event()
}

// CloseRequested is sent when the window manager asks a window to close.
type CloseRequested struct {
	Window string
}

// Focused is sent when a window gains or loses OS input focus.
type Focused struct {
	Window  string
	Focused bool
}

// TrayClick is sent on a left click (button up) on the tray icon.
type TrayClick struct{}

// MenuActivated is sent when a tray menu entry is clicked.
type MenuActivated struct {
	ID string
}

// SecondInstance is sent when another process launch was forwarded to us.
type SecondInstance struct {
	Args []string
}

// OverlayRequested asks for the overlay window to be opened or closed.
type OverlayRequested struct {
	Open bool
}

// SettingsChanged is sent when settings.yaml changed on disk.
type SettingsChanged struct{}

func (CloseRequested) event()   {}
func (Focused) event()          {}
func (TrayClick) event()        {}
func (MenuActivated) event()    {}
func (SecondInstance) event()   {}
func (OverlayRequested) event() {}
func (SettingsChanged) event()  {}

// Name returns a short name for an event, used in logs.
func Name(ev Event) string {
	switch e := ev.(type) {
	case CloseRequested:
		return "close-requested:" + e.Window
	case Focused:
		return fmt.Sprintf("focused:%s:%t", e.Window, e.Focused)
	case TrayClick:
		return "tray-click"
	case MenuActivated:
		return "menu:" + e.ID
	case SecondInstance:
		return "second-instance"
	case OverlayRequested:
		if e.Open {
			return "overlay:open"
		}
		return "overlay:close"
	case SettingsChanged:
		return "settings-changed"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
