package app

import (
	"context"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/models"
)

type recordingHandler struct {
	mu     sync.Mutex
	posted []events.Event
}

func (h *recordingHandler) Post(ev events.Event) {
	h.mu.Lock()
	h.posted = append(h.posted, ev)
	h.mu.Unlock()
}

func (h *recordingHandler) Status() server.Status { return server.Status{} }

func (h *recordingHandler) events() []events.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]events.Event(nil), h.posted...)
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestForwardWithoutInstance(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	found, err := Forward(testCtx(t), []string{"--x"})

	require.NoError(t, err)
	assert.False(t, found)
}

func TestForwardToRunningInstance(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	handler := &recordingHandler{}
	srv, err := server.New(0, handler)
	require.NoError(t, err)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	// The parent process stands in for another live instance.
	info := models.NewInstanceInfo(instanceHost, srv.Port(), os.Getppid())
	require.NoError(t, config.SaveInstanceInfo(info))

	found, err := Forward(testCtx(t), []string{"soundboard://open"})

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []events.Event{
		events.SecondInstance{Args: []string{"soundboard://open"}},
	}, handler.events())
}

func TestListenWritesAndRemovesInstanceFile(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	gate, err := Listen(0, &recordingHandler{})
	require.NoError(t, err)

	info, err := config.LoadInstanceInfo()
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, gate.Port(), info.Port)
	assert.Equal(t, os.Getpid(), info.PID)

	gate.Close()

	info, err = config.LoadInstanceInfo()
	require.NoError(t, err)
	assert.Nil(t, info)
}

// closedPort returns a localhost port nothing listens on.
func closedPort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return port
}

func TestForwardRemovesFileOfReusedPID(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	// A live PID that is not a soundboard instance.
	info := models.NewInstanceInfo(instanceHost, closedPort(t), os.Getppid())
	require.NoError(t, config.SaveInstanceInfo(info))

	found, err := Forward(testCtx(t), []string{"--x"})

	require.NoError(t, err)
	assert.False(t, found)
	left, err := config.LoadInstanceInfo()
	require.NoError(t, err)
	assert.Nil(t, left)

	gate, err := Listen(0, &recordingHandler{})
	require.NoError(t, err)
	gate.Close()
}

func TestListenLosesToLiveHolder(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	holder := models.NewInstanceInfo(instanceHost, 4321, os.Getppid())
	require.NoError(t, config.SaveInstanceInfo(holder))

	gate, err := Listen(0, &recordingHandler{})

	require.ErrorIs(t, err, config.ErrInstanceRunning)
	assert.Nil(t, gate)
	info, err := config.LoadInstanceInfo()
	require.NoError(t, err)
	assert.Equal(t, 4321, info.Port)
}
