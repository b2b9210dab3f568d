//go:build linux

package platform

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/window"
)

// _NET_WM_STATE client message actions.
const (
	wmStateRemove = 0
	wmStateAdd    = 1
)

// x11Host creates and drives the application's top-level X11 windows.
type x11Host struct {
	conn *x11Conn
	post func(events.Event)

	mu      sync.Mutex
	windows map[string]*x11Window
}

var _ window.Host = (*x11Host)(nil)

func newX11Host(conn *x11Conn, post func(events.Event)) *x11Host {
	return &x11Host{
		conn:    conn,
		post:    post,
		windows: make(map[string]*x11Window),
	}
}

// windowSpec describes a window created at setup.
type windowSpec struct {
	label   string
	title   string
	width   int
	height  int
	mapped  bool
	overlay bool
}

// create makes a top-level window and wires its close and focus events.
func (h *x11Host) create(spec windowSpec) error {
	xu := h.conn.xu
	conn := xu.Conn()
	screen := xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("allocate window id for %s: %w", spec.label, err)
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		h.conn.root,
		0, 0,
		uint16(spec.width), uint16(spec.height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			uint32(xproto.EventMaskFocusChange | xproto.EventMaskStructureNotify),
		},
	).Check()
	if err != nil {
		return fmt.Errorf("create window %s: %w", spec.label, err)
	}

	if err := icccm.WmProtocolsSet(xu, wid, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("set WM_PROTOCOLS on %s: %w", spec.label, err)
	}
	if err := icccm.WmClassSet(xu, wid, &icccm.WmClass{Instance: spec.label, Class: "Soundboard"}); err != nil {
		return fmt.Errorf("set WM_CLASS on %s: %w", spec.label, err)
	}
	if spec.overlay {
		// Initial state, read by the window manager when the window is mapped.
		if err := ewmh.WmStateSet(xu, wid, []string{"_NET_WM_STATE_ABOVE", "_NET_WM_STATE_SKIP_TASKBAR"}); err != nil {
			return fmt.Errorf("set overlay state: %w", err)
		}
	}

	w := &x11Window{xu: xu, id: wid, label: spec.label}
	if err := w.SetTitle(spec.title); err != nil {
		return err
	}

	label := spec.label
	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if icccm.IsDeleteProtocol(xu, ev) {
			h.post(events.CloseRequested{Window: label})
		}
	}).Connect(xu, wid)
	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		if ev.Detail != xproto.NotifyDetailPointer {
			h.post(events.Focused{Window: label, Focused: true})
		}
	}).Connect(xu, wid)
	xevent.FocusOutFun(func(xu *xgbutil.XUtil, ev xevent.FocusOutEvent) {
		if ev.Detail != xproto.NotifyDetailPointer {
			h.post(events.Focused{Window: label, Focused: false})
		}
	}).Connect(xu, wid)

	if spec.mapped {
		if err := w.Show(); err != nil {
			return err
		}
	}

	h.mu.Lock()
	h.windows[spec.label] = w
	h.mu.Unlock()
	return nil
}

// Window returns the window created with the given label.
func (h *x11Host) Window(label string) (window.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[label]
	if !ok {
		return nil, false
	}
	return w, true
}

// x11Window implements window.Window on a plain X11 top-level window.
type x11Window struct {
	xu    *xgbutil.XUtil
	id    xproto.Window
	label string
}

func (w *x11Window) Show() error {
	if err := xproto.MapWindowChecked(w.xu.Conn(), w.id).Check(); err != nil {
		return fmt.Errorf("map %s: %w", w.label, err)
	}
	return nil
}

func (w *x11Window) Hide() error {
	if err := xproto.UnmapWindowChecked(w.xu.Conn(), w.id).Check(); err != nil {
		return fmt.Errorf("unmap %s: %w", w.label, err)
	}
	return nil
}

// SetFocus asks the window manager to activate the window.
func (w *x11Window) SetFocus() error {
	if err := ewmh.ActiveWindowReq(w.xu, w.id); err != nil {
		return fmt.Errorf("activate %s: %w", w.label, err)
	}
	return nil
}

func (w *x11Window) SetFullscreen(fullscreen bool) error {
	action := wmStateRemove
	if fullscreen {
		action = wmStateAdd
	}
	if err := ewmh.WmStateReq(w.xu, w.id, action, "_NET_WM_STATE_FULLSCREEN"); err != nil {
		return fmt.Errorf("fullscreen %s: %w", w.label, err)
	}
	return nil
}

func (w *x11Window) SetTitle(title string) error {
	if err := ewmh.WmNameSet(w.xu, w.id, title); err != nil {
		return fmt.Errorf("set _NET_WM_NAME on %s: %w", w.label, err)
	}
	if err := icccm.WmNameSet(w.xu, w.id, title); err != nil {
		return fmt.Errorf("set WM_NAME on %s: %w", w.label, err)
	}
	return nil
}

func (w *x11Window) IsVisible() (bool, error) {
	attrs, err := xproto.GetWindowAttributes(w.xu.Conn(), w.id).Reply()
	if err != nil {
		return false, fmt.Errorf("get attributes of %s: %w", w.label, err)
	}
	return attrs.MapState == xproto.MapStateViewable, nil
}
