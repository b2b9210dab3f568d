package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ddemile/soundboard/internal/app"
	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/tray"
	"github.com/ddemile/soundboard/internal/daemon/watcher"
	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/logger"
	"github.com/ddemile/soundboard/internal/models"
	"github.com/ddemile/soundboard/internal/platform"
)

const forwardTimeout = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run [args...]",
	Short: "Start Soundboard, or bring the running instance to front",
	Args:  cobra.ArbitraryArgs,
	RunE:  runApp,

	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
}

func init() {
	runCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Run without a system tray, logging to stderr")
	runCmd.Flags().IntVar(&flagPort, "port", 0, "Instance server port (0 for dynamic allocation)")
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	if _, err := config.EnsureSettingsFile(); err != nil {
		return err
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if err := configureLogging(settings); err != nil {
		return err
	}
	defer logger.CloseLogFile()

	found, err := forward(cmd.Context(), args)
	if found || err != nil {
		return err
	}

	// Detection runs before any window exists so GDK_BACKEND applies to it.
	display := platform.NewDisplayDetector()
	display.Kind()

	var a *app.App
	session, err := platform.OpenSession(platform.SessionOptions{
		Title:  settings.Window.Title,
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		Post:   func(ev events.Event) { a.Post(ev) },
	})
	if err != nil {
		logger.Fatal("failed to create windows", err)
	}

	var backend tray.Backend = tray.NewNativeBackend()
	if flagForeground {
		logger.Info("running in foreground mode (no system tray)")
		backend = tray.NewHeadlessBackend()
	}

	a = app.New(app.Deps{
		Settings:    settings,
		Session:     session,
		Display:     display,
		TrayBackend: backend,
	})

	gate, err := app.Listen(flagPort, a)
	if errors.Is(err, config.ErrInstanceRunning) {
		// Another launch won the race to instance.yaml.
		session.Close()
		return forwardToRunning(cmd.Context(), args)
	}
	if err != nil {
		logger.Fatal("failed to start instance server", err)
	}

	var settingsWatcher *watcher.Watcher
	if path, err := config.GlobalSettingsFile(); err == nil {
		settingsWatcher, err = watcher.New(path, a.Post)
		if err == nil {
			err = settingsWatcher.Start()
		}
		if err != nil {
			logger.Warnf("settings hot reload disabled: %v", err)
			settingsWatcher = nil
		}
	}

	onStart := func() {
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			logger.Infof("received signal %v, shutting down", sig)
			a.Stop()
		}()
		logger.Infof("Soundboard started (PID %d)", os.Getpid())
	}

	onExit := func() {
		if settingsWatcher != nil {
			settingsWatcher.Stop()
		}
		gate.Close()
		logger.Info("Soundboard stopped")
	}

	// Blocks the main goroutine until the tray exits.
	a.Run(onStart, onExit)
	return nil
}

// forward hands args to a running instance and reports whether one took them.
func forward(parent context.Context, args []string) (bool, error) {
	ctx, cancel := context.WithTimeout(parent, forwardTimeout)
	defer cancel()

	found, err := app.Forward(ctx, args)
	if !found {
		return false, err
	}
	if err != nil {
		return true, fmt.Errorf("failed to reach running instance: %w", err)
	}
	fmt.Println(styleSuccess.Render("Soundboard is already running.") + " " + styleHint.Render("Brought it to front."))
	return true, nil
}

// forwardToRunning is forward for a launch that lost the race to
// instance.yaml, where an instance is known to exist.
func forwardToRunning(parent context.Context, args []string) error {
	found, err := forward(parent, args)
	if err != nil {
		return err
	}
	if !found {
		return config.ErrInstanceRunning
	}
	return nil
}

// configureLogging applies the log level and destination from settings.
// --log-level wins over settings.yaml; --foreground always logs to stderr.
func configureLogging(settings *models.Settings) error {
	level := settings.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger.SetLevel(level)

	if flagForeground {
		return nil
	}
	path, err := config.LogFilePath(settings)
	if err != nil {
		return fmt.Errorf("failed to resolve log file: %w", err)
	}
	if path == "" {
		return nil
	}
	if err := logger.SetOutputFile(path); err != nil {
		return err
	}
	return nil
}
