//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
)

// x11Conn manages the X11 connection shared by the window host and ops.
type x11Conn struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

func newX11Conn() (*x11Conn, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &x11Conn{xu: xu, root: xu.RootWin()}, nil
}

// eventLoop runs the X11 event loop until the connection is closed.
func (c *x11Conn) eventLoop() {
	xevent.Main(c.xu)
}

func (c *x11Conn) close() {
	xevent.Quit(c.xu)
	c.xu.Conn().Close()
}

// x11Ops tracks the EWMH active window.
type x11Ops struct {
	conn *x11Conn
}

var _ WindowOps = (*x11Ops)(nil)

func (o *x11Ops) Available() bool { return true }

func (o *x11Ops) ForegroundWindow() (WindowHandle, error) {
	win, err := ewmh.ActiveWindowGet(o.conn.xu)
	if err != nil {
		return 0, err
	}
	return WindowHandle(win), nil
}

func (o *x11Ops) SetForegroundWindow(h WindowHandle) error {
	return ewmh.ActiveWindowReq(o.conn.xu, xproto.Window(h))
}
