package app

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/logger"
	"github.com/ddemile/soundboard/internal/models"
)

// instanceHost is the only interface the instance server binds to.
const instanceHost = "127.0.0.1"

// Forward hands args to an already running instance. It reports whether one
// was found; when it was, this process should exit.
func Forward(ctx context.Context, args []string) (bool, error) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return false, fmt.Errorf("failed to check instance status: %w", err)
	}
	if !running {
		return false, nil
	}

	client, err := server.Dial(info)
	if err != nil {
		return true, err
	}
	defer client.Close()

	if err := client.Activate(ctx, args); err != nil {
		if status.Code(err) != codes.Unavailable {
			return true, err
		}
		// The PID is alive but nothing listens: the file outlived its
		// instance and the PID was reused.
		logger.Warnf("instance file points at PID %d but port %d is closed, removing it", info.PID, info.Port)
		if rmErr := config.RemoveInstanceInfo(); rmErr != nil {
			return false, fmt.Errorf("failed to remove stale instance info: %w", rmErr)
		}
		return false, nil
	}
	logger.Infof("forwarded launch to running instance (PID %d)", info.PID)
	return true, nil
}

// Gate is the primary instance's side of the single-instance check: the
// instance server plus the instance file pointing at it.
type Gate struct {
	srv *server.Server
}

// Listen starts the instance server on port (0 for dynamic) and records it
// in instance.yaml. It fails with config.ErrInstanceRunning when another
// launch claimed the file first.
func Listen(port int, handler server.Handler) (*Gate, error) {
	srv, err := server.New(port, handler)
	if err != nil {
		return nil, err
	}

	info := models.NewInstanceInfo(instanceHost, srv.Port(), os.Getpid())
	if err := config.ClaimInstanceInfo(info); err != nil {
		srv.Stop()
		return nil, fmt.Errorf("failed to claim instance info: %w", err)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			logger.Error("instance server stopped", err)
		}
	}()

	logger.Infof("instance server listening on %s:%d (PID %d)", instanceHost, srv.Port(), info.PID)
	return &Gate{srv: srv}, nil
}

// Port returns the instance server port.
func (g *Gate) Port() int {
	return g.srv.Port()
}

// Close stops the server and removes instance.yaml.
func (g *Gate) Close() {
	g.srv.Stop()
	if err := config.RemoveInstanceInfo(); err != nil {
		logger.Error("failed to remove instance info", err)
	}
}
