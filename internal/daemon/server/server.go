// Package server implements the instance gRPC server. A second launch of the
// application talks to it instead of starting another tray.
package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/ddemile/soundboard/internal/logger"
)

// requestIDKey is the metadata key carrying the client-generated request id.
const requestIDKey = "x-request-id"

// Server is the instance gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	port       int
}

// New creates a new server listening on localhost at the specified port.
// Pass port 0 for dynamic allocation.
func New(port int, handler Handler) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	return NewWithListener(listener, handler), nil
}

// NewWithListener creates a server on an existing listener.
func NewWithListener(listener net.Listener, handler Handler) *Server {
	port := 0
	if addr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(logRequests))
	RegisterInstanceServiceServer(grpcServer, &instanceService{handler: handler})

	return &Server{
		grpcServer: grpcServer,
		listener:   listener,
		port:       port,
	}
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server. The listener is closed even if Serve
// was never called.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
	_ = s.listener.Close()
}

func logRequests(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	log := logger.Component("instance")
	requestID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDKey); len(ids) > 0 {
			requestID = ids[0]
		}
	}

	resp, err := handler(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("method", info.FullMethod).Str("request_id", requestID).Msg("request failed")
		return resp, err
	}
	log.Debug().Str("method", info.FullMethod).Str("request_id", requestID).Msg("request served")
	return resp, nil
}
