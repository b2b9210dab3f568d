package server

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ddemile/soundboard/internal/events"
)

type fakeHandler struct {
	mu     sync.Mutex
	posted []events.Event
	status Status
}

func (h *fakeHandler) Post(ev events.Event) {
	h.mu.Lock()
	h.posted = append(h.posted, ev)
	h.mu.Unlock()
}

func (h *fakeHandler) Status() Status {
	return h.status
}

func (h *fakeHandler) events() []events.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]events.Event(nil), h.posted...)
}

func startServer(t *testing.T, handler Handler) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := NewWithListener(lis, handler)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	client := NewClient(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestActivatePostsSecondInstance(t *testing.T) {
	handler := &fakeHandler{}
	client := startServer(t, handler)

	err := client.Activate(testContext(t), []string{"soundboard://play/42", "--flag1"})
	require.NoError(t, err)

	assert.Equal(t, []events.Event{
		events.SecondInstance{Args: []string{"soundboard://play/42", "--flag1"}},
	}, handler.events())
}

func TestActivateWithoutArgs(t *testing.T) {
	handler := &fakeHandler{}
	client := startServer(t, handler)

	require.NoError(t, client.Activate(testContext(t), nil))
	assert.Equal(t, []events.Event{events.SecondInstance{Args: []string{}}}, handler.events())
}

func TestStatusRoundTrip(t *testing.T) {
	handler := &fakeHandler{status: Status{
		Visibility:    "hidden",
		ToggleLabel:   "Show window",
		DisplayServer: "x11",
		PID:           4242,
		LastFocus:     "0x2a00007",
	}}
	client := startServer(t, handler)

	st, err := client.Status(testContext(t))
	require.NoError(t, err)
	assert.Equal(t, &handler.status, st)
}

func TestOverlayPostsRequest(t *testing.T) {
	handler := &fakeHandler{}
	client := startServer(t, handler)

	require.NoError(t, client.Overlay(testContext(t), true))
	require.NoError(t, client.Overlay(testContext(t), false))

	assert.Equal(t, []events.Event{
		events.OverlayRequested{Open: true},
		events.OverlayRequested{Open: false},
	}, handler.events())
}

func TestNilHandlerIsUnavailable(t *testing.T) {
	client := startServer(t, nil)

	err := client.Activate(testContext(t), []string{"x"})
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}
