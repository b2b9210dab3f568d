//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

type win32Ops struct{}

var _ WindowOps = win32Ops{}

// NewWindowOps returns the user32-backed window ops.
func NewWindowOps() WindowOps {
	if err := user32.Load(); err != nil {
		return noopOps{}
	}
	return win32Ops{}
}

func (win32Ops) Available() bool { return true }

func (win32Ops) ForegroundWindow() (WindowHandle, error) {
	if err := procGetForegroundWindow.Find(); err != nil {
		return 0, err
	}
	hwnd, _, _ := procGetForegroundWindow.Call()
	return WindowHandle(hwnd), nil
}

func (win32Ops) SetForegroundWindow(h WindowHandle) error {
	if err := procSetForegroundWindow.Find(); err != nil {
		return err
	}
	ok, _, callErr := procSetForegroundWindow.Call(uintptr(h))
	if ok == 0 {
		return fmt.Errorf("SetForegroundWindow(%s): %w", h, callErr)
	}
	return nil
}
