// Package tray implements the system tray icon and menu.
package tray

// Backend is the native tray implementation. Run must be called on the main
// goroutine (Cocoa requirement on macOS) and blocks until Quit.
type Backend interface {
	Run(onReady, onExit func())
	Quit()
	SetIcon(icon []byte)
	SetTooltip(text string)
	// AddItem appends a menu entry. onClick runs on a backend goroutine.
	AddItem(title, tooltip string, onClick func()) Item
	AddSeparator()
	// OnIconClick registers the handler for a left click on the icon.
	// Backends whose icon click always opens the menu ignore it.
	OnIconClick(fn func())
}

// Item is a menu entry whose text can be changed in place.
type Item interface {
	SetTitle(title string)
}
