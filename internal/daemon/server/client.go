package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ddemile/soundboard/internal/models"
)

// Client talks to a running instance.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the instance described by info.
func Dial(info *models.InstanceInfo) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", info.Host, info.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to instance: %w", err)
	}
	return NewClient(conn), nil
}

// NewClient wraps an existing connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Activate forwards args to the running instance, which brings its window
// to front.
func (c *Client) Activate(ctx context.Context, args []string) error {
	values := make([]*structpb.Value, 0, len(args))
	for _, arg := range args {
		values = append(values, structpb.NewStringValue(arg))
	}
	in := &structpb.ListValue{Values: values}
	if err := c.conn.Invoke(withRequestID(ctx), ActivateMethod, in, &emptypb.Empty{}); err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	return nil
}

// Status fetches the window state of the running instance.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	out := &structpb.Struct{}
	if err := c.conn.Invoke(withRequestID(ctx), StatusMethod, &emptypb.Empty{}, out); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return statusFromStruct(out), nil
}

// Overlay opens or closes the overlay window.
func (c *Client) Overlay(ctx context.Context, open bool) error {
	if err := c.conn.Invoke(withRequestID(ctx), OverlayMethod, wrapperspb.Bool(open), &emptypb.Empty{}); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}

func withRequestID(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, requestIDKey, uuid.NewString())
}
