package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddemile/soundboard/internal/window"
)

func TestHeadlessSessionKeepsPlatformOps(t *testing.T) {
	ops := &fakeOps{foreground: 0x42}
	session := NewHeadlessSession(ops)
	defer session.Close()

	// Window calls are logical only.
	main, ok := session.Host.Window(window.MainLabel)
	require.True(t, ok)
	require.NoError(t, main.Hide())
	visible, err := main.IsVisible()
	require.NoError(t, err)
	assert.False(t, visible)

	_, ok = session.Host.Window(window.OverlayLabel)
	assert.True(t, ok)

	// Foreground window calls still reach the ops.
	tracker := NewFocusTracker(session.Ops)
	tracker.Capture()
	tracker.Restore()
	assert.Equal(t, []WindowHandle{0x42}, ops.focused)

	// EventLoop returns immediately without a native connection.
	session.EventLoop()
}

func TestHeadlessSessionDefaultsToNoop(t *testing.T) {
	session := NewHeadlessSession(nil)
	assert.False(t, session.Ops.Available())
}
