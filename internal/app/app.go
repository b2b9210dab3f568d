// Package app wires the window state machine, tray and platform services
// together and runs the single dispatcher goroutine.
package app

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/daemon/tray"
	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/logger"
	"github.com/ddemile/soundboard/internal/models"
	"github.com/ddemile/soundboard/internal/platform"
	"github.com/ddemile/soundboard/internal/window"
)

// DeepLinkScheme prefixes argv entries that are deep links.
const DeepLinkScheme = "soundboard://"

const eventBuffer = 64

// Deps are the handles the application runs on.
type Deps struct {
	Settings    *models.Settings
	Session     *platform.Session
	Display     *platform.DisplayDetector
	TrayBackend tray.Backend

	// Exit terminates the process on Quit. Defaults to os.Exit.
	Exit func(code int)
	// Fatal aborts on unrecoverable state. Defaults to logger.Fatal.
	Fatal func(msg string, err error)
	// LoadSettings re-reads settings on SettingsChanged. Defaults to
	// config.LoadSettings.
	LoadSettings func() (*models.Settings, error)
}

// App is the running application.
type App struct {
	session *platform.Session
	host    window.Host
	display *platform.DisplayDetector
	focus   *platform.FocusTracker
	window  *window.Controller
	tray    *tray.Controller

	fatal        func(msg string, err error)
	loadSettings func() (*models.Settings, error)
	log          zerolog.Logger

	events   chan events.Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu          sync.Mutex
	settings    *models.Settings
	overlayOpen bool
}

// New builds the application from its dependencies. Nothing runs until Run.
func New(deps Deps) *App {
	if deps.Settings == nil {
		deps.Settings = models.NewSettings()
	}
	if deps.Session == nil {
		deps.Session = platform.NewHeadlessSession(nil)
	}
	if deps.Display == nil {
		deps.Display = platform.NewDisplayDetector()
	}
	if deps.TrayBackend == nil {
		deps.TrayBackend = tray.NewHeadlessBackend()
	}
	if deps.Exit == nil {
		deps.Exit = os.Exit
	}
	if deps.Fatal == nil {
		deps.Fatal = logger.Fatal
	}
	if deps.LoadSettings == nil {
		deps.LoadSettings = config.LoadSettings
	}

	a := &App{
		session:      deps.Session,
		host:         deps.Session.Host,
		display:      deps.Display,
		focus:        platform.NewFocusTracker(deps.Session.Ops),
		fatal:        deps.Fatal,
		loadSettings: deps.LoadSettings,
		log:          logger.Component("app"),
		events:       make(chan events.Event, eventBuffer),
		done:         make(chan struct{}),
		settings:     deps.Settings,
	}

	a.window = window.NewController(a.host)
	a.tray = tray.New(deps.TrayBackend, a.window, a.Post, tray.Options{
		Tooltip: deps.Settings.Tray.Tooltip,
		Exit:    deps.Exit,
	})
	a.window.AttachLabel(a.tray)
	return a
}

// Window returns the main window state machine.
func (a *App) Window() *window.Controller { return a.window }

// Tray returns the tray controller.
func (a *App) Tray() *tray.Controller { return a.tray }

// Focus returns the foreign-focus tracker.
func (a *App) Focus() *platform.FocusTracker { return a.focus }

// Post queues an event for the dispatcher. Safe from any goroutine. Events
// posted after the dispatcher stopped are dropped.
func (a *App) Post(ev events.Event) {
	select {
	case <-a.done:
		return
	default:
	}
	select {
	case a.events <- ev:
	case <-a.done:
	}
}

// Run starts the dispatcher and the native event loop, then runs the tray on
// the calling goroutine, which must be the main goroutine. onStart runs once
// the tray menu exists; onExit after the tray has exited.
func (a *App) Run(onStart, onExit func()) {
	a.wg.Add(1)
	go a.loop()
	go a.session.EventLoop()

	a.tray.Run(func() {
		a.window.Init()
		a.log.Info().
			Stringer("display_server", a.display.Kind()).
			Str("label", a.window.Label()).
			Msg("tray ready")
		if onStart != nil {
			onStart()
		}
	}, func() {
		a.stop()
		a.session.Close()
		if onExit != nil {
			onExit()
		}
	})
}

// Stop asks the tray to exit, which unblocks Run.
func (a *App) Stop() {
	a.tray.Quit()
}

func (a *App) stop() {
	a.stopOnce.Do(func() { close(a.done) })
	a.wg.Wait()
}

func (a *App) loop() {
	defer a.wg.Done()
	for {
		select {
		case <-a.done:
			return
		case ev := <-a.events:
			a.dispatch(ev)
		}
	}
}

// dispatch hands ev to the first component that consumes it.
func (a *App) dispatch(ev events.Event) {
	a.log.Debug().Str("event", events.Name(ev)).Msg("dispatch")

	if a.tray.Dispatch(ev) || a.window.Dispatch(ev) {
		return
	}

	switch e := ev.(type) {
	case events.SecondInstance:
		a.onSecondInstance(e.Args)
	case events.OverlayRequested:
		if e.Open {
			a.openOverlay()
		} else {
			a.closeOverlay()
		}
	case events.CloseRequested:
		if e.Window == window.OverlayLabel {
			a.closeOverlay()
		}
	case events.Focused:
		// Overlay focus changes need no handling.
	case events.SettingsChanged:
		a.reloadSettings()
	default:
		a.log.Debug().Str("event", events.Name(ev)).Msg("unhandled event")
	}
}

func (a *App) onSecondInstance(args []string) {
	a.log.Info().Strs("args", args).Msg("second instance launched")
	for _, arg := range args {
		if strings.HasPrefix(arg, DeepLinkScheme) {
			a.log.Info().Str("url", arg).Msg("deep link received")
		}
	}

	if _, ok := a.host.Window(window.MainLabel); !ok {
		a.fatal("second instance without a main window", fmt.Errorf("%w: %s", window.ErrNoWindow, window.MainLabel))
		return
	}
	a.window.ShowAndFocus()
}

func (a *App) openOverlay() {
	w, ok := a.host.Window(window.OverlayLabel)
	if !ok {
		a.log.Debug().Msg("overlay window not found")
		return
	}

	a.focus.Capture()
	if err := w.Show(); err != nil {
		a.log.Warn().Err(err).Msg("failed to show overlay")
	}
	// Applied on every open so a hot-reloaded setting takes effect.
	fullscreen := a.overlayFullscreen()
	if err := w.SetFullscreen(fullscreen); err != nil {
		a.log.Warn().Err(err).Bool("fullscreen", fullscreen).Msg("failed to set overlay fullscreen")
	}
	if err := w.SetFocus(); err != nil {
		a.log.Warn().Err(err).Msg("failed to focus overlay")
	}

	a.mu.Lock()
	a.overlayOpen = true
	a.mu.Unlock()
}

func (a *App) closeOverlay() {
	w, ok := a.host.Window(window.OverlayLabel)
	if !ok {
		a.log.Debug().Msg("overlay window not found")
		return
	}

	if err := w.SetFullscreen(false); err != nil {
		a.log.Warn().Err(err).Msg("failed to leave overlay fullscreen")
	}
	if err := w.Hide(); err != nil {
		a.log.Warn().Err(err).Msg("failed to hide overlay")
	}
	a.focus.Restore()

	a.mu.Lock()
	a.overlayOpen = false
	a.mu.Unlock()
}

func (a *App) overlayFullscreen() bool {
	a.mu.Lock()
	enabled := a.settings.Window.OverlayFullscreenOnX11
	a.mu.Unlock()
	return enabled && a.display.Kind() == platform.DisplayX11
}

// OverlayOpen reports whether the overlay is currently shown.
func (a *App) OverlayOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overlayOpen
}

func (a *App) reloadSettings() {
	settings, err := a.loadSettings()
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to reload settings, keeping current")
		return
	}

	a.mu.Lock()
	prev := a.settings
	a.settings = settings
	a.mu.Unlock()

	if settings.Window.Title != prev.Window.Title {
		if w, ok := a.host.Window(window.MainLabel); ok {
			if err := w.SetTitle(settings.Window.Title); err != nil {
				a.log.Warn().Err(err).Msg("failed to set window title")
			}
		}
	}
	if settings.Tray.Tooltip != prev.Tray.Tooltip {
		a.tray.SetTooltip(settings.Tray.Tooltip)
	}
	if settings.Log.Level != prev.Log.Level {
		logger.SetLevel(settings.Log.Level)
	}
	a.log.Info().Msg("settings reloaded")
}

// Settings returns the settings currently applied.
func (a *App) Settings() *models.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Status implements server.Handler.
func (a *App) Status() server.Status {
	st := server.Status{
		Visibility:    a.window.Visibility().String(),
		ToggleLabel:   a.tray.ToggleText(),
		DisplayServer: a.display.Kind().String(),
		PID:           os.Getpid(),
	}
	if h, ok := a.focus.Last(); ok {
		st.LastFocus = h.String()
	}
	return st
}

var _ server.Handler = (*App)(nil)
