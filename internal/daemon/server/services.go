package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ddemile/soundboard/internal/events"
)

// ============================================================================
// gRPC Service Definition (inline, messages are protobuf well-known types)
// ============================================================================

const instanceServiceName = "soundboard.InstanceService"

// Full method names.
const (
	ActivateMethod = "/" + instanceServiceName + "/Activate"
	StatusMethod   = "/" + instanceServiceName + "/Status"
	OverlayMethod  = "/" + instanceServiceName + "/Overlay"
)

// InstanceServiceServer is the server interface for InstanceService.
type InstanceServiceServer interface {
	// Activate forwards a second launch's argv and brings the window to front.
	Activate(context.Context, *structpb.ListValue) (*emptypb.Empty, error)
	// Status reports the window state of the running instance.
	Status(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// Overlay opens (true) or closes (false) the overlay window.
	Overlay(context.Context, *wrapperspb.BoolValue) (*emptypb.Empty, error)
}

var instanceServiceDesc = grpc.ServiceDesc{
	ServiceName: instanceServiceName,
	HandlerType: (*InstanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Activate",
			Handler: unary(ActivateMethod, func(s InstanceServiceServer, ctx context.Context, in *structpb.ListValue) (any, error) {
				return s.Activate(ctx, in)
			}),
		},
		{
			MethodName: "Status",
			Handler: unary(StatusMethod, func(s InstanceServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Status(ctx, in)
			}),
		},
		{
			MethodName: "Overlay",
			Handler: unary(OverlayMethod, func(s InstanceServiceServer, ctx context.Context, in *wrapperspb.BoolValue) (any, error) {
				return s.Overlay(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "soundboard/instance.proto",
}

// RegisterInstanceServiceServer registers the InstanceServiceServer with the gRPC server.
func RegisterInstanceServiceServer(s grpc.ServiceRegistrar, srv InstanceServiceServer) {
	s.RegisterService(&instanceServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodHandler, the shape protoc
// would generate for each method.
func unary[Req any](fullMethod string, call func(InstanceServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		impl := srv.(InstanceServiceServer)
		if interceptor == nil {
			return call(impl, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(impl, ctx, req.(*Req))
		})
	}
}

// ============================================================================
// Service Implementation
// ============================================================================

// Handler is the running application as seen by the instance service.
type Handler interface {
	// Post queues an event for the dispatcher.
	Post(ev events.Event)
	// Status returns a snapshot of the window state.
	Status() Status
}

// Status is a snapshot of the running instance.
type Status struct {
	Visibility    string
	ToggleLabel   string
	DisplayServer string
	PID           int
	LastFocus     string
}

type instanceService struct {
	handler Handler
}

func (s *instanceService) Activate(ctx context.Context, in *structpb.ListValue) (*emptypb.Empty, error) {
	if s.handler == nil {
		return nil, status.Error(codes.Unavailable, "instance is starting")
	}
	args := make([]string, 0, len(in.GetValues()))
	for _, v := range in.GetValues() {
		args = append(args, v.GetStringValue())
	}
	s.handler.Post(events.SecondInstance{Args: args})
	return &emptypb.Empty{}, nil
}

func (s *instanceService) Status(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.handler == nil {
		return nil, status.Error(codes.Unavailable, "instance is starting")
	}
	st := s.handler.Status()
	out, err := structpb.NewStruct(map[string]any{
		"visibility":     st.Visibility,
		"toggle_label":   st.ToggleLabel,
		"display_server": st.DisplayServer,
		"pid":            st.PID,
		"last_focus":     st.LastFocus,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode status: %v", err)
	}
	return out, nil
}

func (s *instanceService) Overlay(ctx context.Context, in *wrapperspb.BoolValue) (*emptypb.Empty, error) {
	if s.handler == nil {
		return nil, status.Error(codes.Unavailable, "instance is starting")
	}
	s.handler.Post(events.OverlayRequested{Open: in.GetValue()})
	return &emptypb.Empty{}, nil
}

// statusFromStruct decodes the Status message on the client side.
func statusFromStruct(in *structpb.Struct) *Status {
	fields := in.GetFields()
	return &Status{
		Visibility:    fields["visibility"].GetStringValue(),
		ToggleLabel:   fields["toggle_label"].GetStringValue(),
		DisplayServer: fields["display_server"].GetStringValue(),
		PID:           int(fields["pid"].GetNumberValue()),
		LastFocus:     fields["last_focus"].GetStringValue(),
	}
}
