package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/models"
)

const requestTimeout = 5 * time.Second

// connectInstance dials the running instance. It returns
// config.ErrInstanceNotRunning when there is none.
func connectInstance() (*server.Client, *models.InstanceInfo, error) {
	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check instance status: %w", err)
	}
	if !running {
		return nil, nil, config.ErrInstanceNotRunning
	}

	client, err := server.Dial(info)
	if err != nil {
		return nil, nil, err
	}
	return client, info, nil
}

// withInstance runs fn against the running instance with a request timeout.
func withInstance(parent context.Context, fn func(ctx context.Context, client *server.Client, info *models.InstanceInfo) error) error {
	client, info, err := connectInstance()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(parent, requestTimeout)
	defer cancel()
	return fn(ctx, client, info)
}
