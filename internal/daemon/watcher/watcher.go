// Package watcher reloads settings when settings.yaml changes on disk.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ddemile/soundboard/internal/events"
	"github.com/ddemile/soundboard/internal/logger"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file and posts SettingsChanged after it settles.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	post      func(events.Event)
	delay     time.Duration
	log       zerolog.Logger
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	timer      *time.Timer
}

// New creates a watcher for path. post is called from the watcher's own
// goroutine.
func New(path string, post func(events.Event)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		post:      post,
		delay:     DefaultDebounce,
		log:       logger.Component("watcher"),
		done:      make(chan struct{}),
	}, nil
}

// SetDebounce overrides the debounce delay. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.delay = d
}

// Start watches the file's directory. The directory is watched instead of
// the file so atomic rename-over writes are seen.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("fsnotify")
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Rename covers temp-file-then-rename saves.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if filepath.Clean(event.Name) != w.path {
		return
	}
	w.debounce()
}

func (w *Watcher) debounce() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.log.Info().Str("path", w.path).Msg("settings changed")
		w.post(events.SettingsChanged{})
	})
}
