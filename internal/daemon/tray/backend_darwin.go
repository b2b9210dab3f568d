//go:build darwin

package tray

import "github.com/getlantern/systray"

// nativeBackend uses getlantern/systray. A click on the macOS status item
// always opens the menu, so there is no separate icon-click event.
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
	systray.SetTemplateIcon(icon, icon)
}

func (nativeBackend) SetTooltip(text string) {
	systray.SetTooltip(text)
}

func (nativeBackend) AddItem(title, tooltip string, onClick func()) Item {
	item := systray.AddMenuItem(title, tooltip)
	go func() {
		for range item.ClickedCh {
			onClick()
		}
	}()
	return item
}

func (nativeBackend) AddSeparator() {
	systray.AddSeparator()
}

func (nativeBackend) OnIconClick(func()) {}
