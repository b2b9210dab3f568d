//go:build linux

package platform

import (
	"fmt"

	"github.com/ddemile/soundboard/internal/logger"
	"github.com/ddemile/soundboard/internal/window"
)

// OpenSession connects to X11 and creates the main and overlay windows.
// Without an X server (pure Wayland, no XWayland) the session is headless.
func OpenSession(opts SessionOptions) (*Session, error) {
	conn, err := newX11Conn()
	if err != nil {
		logger.Warnf("no X11 display, running without native windows: %v", err)
		return NewHeadlessSession(nil), nil
	}

	host := newX11Host(conn, opts.Post)
	specs := []windowSpec{
		{label: window.MainLabel, title: opts.Title, width: opts.Width, height: opts.Height, mapped: true},
		{label: window.OverlayLabel, title: opts.Title + " Overlay", width: 400, height: 400, overlay: true},
	}
	for _, spec := range specs {
		if err := host.create(spec); err != nil {
			conn.close()
			return nil, fmt.Errorf("failed to create %s window: %w", spec.label, err)
		}
	}

	return &Session{
		Host:  host,
		Ops:   &x11Ops{conn: conn},
		loop:  conn.eventLoop,
		close: conn.close,
	}, nil
}
