package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		x11         bool
		want        DisplayServer
		wantBackend string
	}{
		{name: "no signals, X11 unreachable", want: DisplayUnknown},
		{name: "wayland, X11 unreachable", env: map[string]string{EnvWaylandDisplay: "wayland-0"}, want: DisplayWayland},
		{name: "display only, X11 unreachable", env: map[string]string{EnvDisplay: ":0"}, want: DisplayX11},
		{name: "both signals, X11 unreachable", env: map[string]string{EnvWaylandDisplay: "wayland-0", EnvDisplay: ":0"}, want: DisplayWayland},
		{name: "no signals, X11 connects", x11: true, want: DisplayX11, wantBackend: "x11"},
		{name: "wayland, X11 connects", env: map[string]string{EnvWaylandDisplay: "wayland-0"}, x11: true, want: DisplayX11, wantBackend: "x11"},
		{name: "display, X11 connects", env: map[string]string{EnvDisplay: ":1"}, x11: true, want: DisplayX11, wantBackend: "x11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range tt.env {
				env[k] = v
			}

			got := Detect(DetectEnv{
				Getenv: func(key string) string { return env[key] },
				Setenv: func(key, value string) error {
					env[key] = value
					return nil
				},
				CanConnectX11: func() bool { return tt.x11 },
			})

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantBackend, env[EnvGDKBackend])
		})
	}
}

func TestDisplayDetectorRunsOnce(t *testing.T) {
	calls := 0
	d := NewDisplayDetectorFunc(func() DisplayServer {
		calls++
		return DisplayWayland
	})

	assert.Equal(t, DisplayWayland, d.Kind())
	assert.Equal(t, DisplayWayland, d.Kind())
	assert.Equal(t, 1, calls)
}

func TestDisplayServerString(t *testing.T) {
	assert.Equal(t, "none", DisplayNone.String())
	assert.Equal(t, "x11", DisplayX11.String())
	assert.Equal(t, "wayland", DisplayWayland.String())
	assert.Equal(t, "unknown", DisplayUnknown.String())
}
