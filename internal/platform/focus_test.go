package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeOps struct {
	foreground WindowHandle
	readErr    error
	setErr     error
	focused    []WindowHandle
}

func (f *fakeOps) Available() bool { return true }

func (f *fakeOps) ForegroundWindow() (WindowHandle, error) {
	return f.foreground, f.readErr
}

func (f *fakeOps) SetForegroundWindow(h WindowHandle) error {
	f.focused = append(f.focused, h)
	if f.setErr == nil {
		f.foreground = h
	}
	return f.setErr
}

func TestFocusTrackerRoundTrip(t *testing.T) {
	ops := &fakeOps{foreground: 0x2a00007}
	tracker := NewFocusTracker(ops)

	tracker.Capture()
	ops.foreground = 0x1000 // our overlay took focus
	tracker.Restore()

	assert.Equal(t, []WindowHandle{0x2a00007}, ops.focused)
	assert.Equal(t, WindowHandle(0x2a00007), ops.foreground)
}

func TestFocusTrackerRestoreWithoutCaptureIsNoop(t *testing.T) {
	ops := &fakeOps{foreground: 42}
	tracker := NewFocusTracker(ops)

	tracker.Restore()

	assert.Empty(t, ops.focused)
	_, ok := tracker.Last()
	assert.False(t, ok)
}

func TestFocusTrackerCaptureOverwrites(t *testing.T) {
	ops := &fakeOps{foreground: 1}
	tracker := NewFocusTracker(ops)

	tracker.Capture()
	ops.foreground = 2
	tracker.Capture()
	tracker.Restore()

	assert.Equal(t, []WindowHandle{2}, ops.focused)
}

func TestFocusTrackerRestoreKeepsSlot(t *testing.T) {
	ops := &fakeOps{foreground: 7}
	tracker := NewFocusTracker(ops)

	tracker.Capture()
	tracker.Restore()
	tracker.Restore()

	assert.Equal(t, []WindowHandle{7, 7}, ops.focused)
	last, ok := tracker.Last()
	assert.True(t, ok)
	assert.Equal(t, WindowHandle(7), last)
}

func TestFocusTrackerIgnoresEmptyAndFailedReads(t *testing.T) {
	tests := []struct {
		name    string
		handle  WindowHandle
		readErr error
	}{
		{name: "no foreground window", handle: 0},
		{name: "read error", handle: 99, readErr: errors.New("no EWMH support")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := &fakeOps{foreground: 5}
			tracker := NewFocusTracker(ops)
			tracker.Capture()

			ops.foreground = tt.handle
			ops.readErr = tt.readErr
			tracker.Capture()

			last, ok := tracker.Last()
			assert.True(t, ok)
			assert.Equal(t, WindowHandle(5), last, "previous capture must survive")
		})
	}
}

func TestFocusTrackerRestoreFailureIsNotFatal(t *testing.T) {
	ops := &fakeOps{foreground: 3, setErr: errors.New("denied")}
	tracker := NewFocusTracker(ops)

	tracker.Capture()
	assert.NotPanics(t, tracker.Restore)
	assert.Equal(t, []WindowHandle{3}, ops.focused)
}

func TestFocusTrackerNoopOps(t *testing.T) {
	tracker := NewFocusTracker(NoopOps())

	tracker.Capture()
	tracker.Restore()

	_, ok := tracker.Last()
	assert.False(t, ok)
}

func TestWindowHandleString(t *testing.T) {
	assert.Equal(t, "0x2a00007", WindowHandle(0x2a00007).String())
}
