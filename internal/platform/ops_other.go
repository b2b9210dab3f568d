//go:build !linux && !windows

package platform

// NewWindowOps returns no-op window ops: this platform has no foreground
// window tracking.
func NewWindowOps() WindowOps {
	return noopOps{}
}
