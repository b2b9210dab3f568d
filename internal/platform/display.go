package platform

import "sync"

// DisplayServer is the windowing backend active for this process.
type DisplayServer int

const (
	// DisplayNone is reported on platforms with a single windowing system.
	DisplayNone DisplayServer = iota
	DisplayX11
	DisplayWayland
	DisplayUnknown
)

// Environment variables read and written by detection.
const (
	EnvWaylandDisplay = "WAYLAND_DISPLAY"
	EnvDisplay        = "DISPLAY"
	EnvGDKBackend     = "GDK_BACKEND"
)

// String returns the name used by the CLI and the instance service.
func (d DisplayServer) String() string {
	switch d {
	case DisplayNone:
		return "none"
	case DisplayX11:
		return "x11"
	case DisplayWayland:
		return "wayland"
	default:
		return "unknown"
	}
}

// DetectEnv is what detection needs from the process environment.
type DetectEnv struct {
	Getenv        func(key string) string
	Setenv        func(key, value string) error
	// CanConnectX11 reports whether an X11 connection can be opened.
	CanConnectX11 func() bool
}

// Detect classifies the display server from environment signals, then
// tries an X11 connection. A successful connection always wins and asks GTK
// to use X11 too: window placement (fullscreen overlay) is only implemented
// for X11.
func Detect(env DetectEnv) DisplayServer {
	kind := DisplayUnknown
	switch {
	case env.Getenv(EnvWaylandDisplay) != "":
		kind = DisplayWayland
	case env.Getenv(EnvDisplay) != "":
		kind = DisplayX11
	}

	if env.CanConnectX11 != nil && env.CanConnectX11() {
		kind = DisplayX11
		if env.Setenv != nil {
			_ = env.Setenv(EnvGDKBackend, "x11")
		}
	}
	return kind
}

// DisplayDetector computes the display server once and then only serves the
// stored value.
type DisplayDetector struct {
	once   sync.Once
	detect func() DisplayServer
	kind   DisplayServer
}

// NewDisplayDetector returns a detector for the current platform.
func NewDisplayDetector() *DisplayDetector {
	return &DisplayDetector{detect: detectDisplayServer}
}

// NewDisplayDetectorFunc returns a detector backed by fn.
func NewDisplayDetectorFunc(fn func() DisplayServer) *DisplayDetector {
	return &DisplayDetector{detect: fn}
}

// Kind returns the detected display server, running detection on first use.
func (d *DisplayDetector) Kind() DisplayServer {
	d.once.Do(func() {
		d.kind = d.detect()
	})
	return d.kind
}
