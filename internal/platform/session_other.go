//go:build !linux

package platform

import "github.com/ddemile/soundboard/internal/logger"

// OpenSession returns a headless window host with the platform's foreground
// window ops. Show, hide and focus of the main and overlay windows are only
// tracked logically here, while the returned ops are real: on Windows the
// focus tracker calls user32 GetForegroundWindow/SetForegroundWindow.
func OpenSession(opts SessionOptions) (*Session, error) {
	logger.Info("no native window host on this platform, using headless windows")
	return NewHeadlessSession(NewWindowOps()), nil
}
