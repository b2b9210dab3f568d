//go:build !darwin

package tray

import "github.com/energye/systray"

// nativeBackend uses energye/systray, which reports left clicks on the icon
// separately from the menu.
type nativeBackend struct{}

// NewNativeBackend returns the platform tray backend.
func NewNativeBackend() Backend {
	return nativeBackend{}
}

func (nativeBackend) Run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

func (nativeBackend) Quit() {
	systray.Quit()
}

func (nativeBackend) SetIcon(icon []byte) {
	systray.SetIcon(icon)
}

func (nativeBackend) SetTooltip(text string) {
	systray.SetTooltip(text)
}

func (nativeBackend) AddItem(title, tooltip string, onClick func()) Item {
	item := systray.AddMenuItem(title, tooltip)
	item.Click(onClick)
	return item
}

func (nativeBackend) AddSeparator() {
	systray.AddSeparator()
}

// OnIconClick binds the left click; the right click keeps opening the menu.
func (nativeBackend) OnIconClick(fn func()) {
	systray.SetOnClick(func(menu systray.IMenu) {
		fn()
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		menu.ShowMenu()
	})
}
