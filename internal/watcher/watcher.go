// Package watcher reports changes to a single file using fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors which save through a temporary file and a rename are still
// seen. Events for other files in the directory are ignored.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher calls a handler whenever the watched file changes.
type Watcher struct {
	path     string
	name     string
	onChange func(fsnotify.Event)
	log      zerolog.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	wg      sync.WaitGroup
	running bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

// New creates a watcher for path. onChange runs on the watcher goroutine.
func New(path string, onChange func(fsnotify.Event), opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		name:     filepath.Base(path),
		onChange: onChange,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.fsw = fsw
	w.running = true
	w.wg.Add(1)
	go w.loop(fsw)

	w.log.Debug().Str("path", w.path).Msg("watching")
	return nil
}

// Stop ends watching and blocks until the watcher goroutine has exited.
// Stopping a watcher that is not running is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	fsw := w.fsw
	w.fsw = nil
	w.mu.Unlock()

	fsw.Close()
	w.wg.Wait()
	w.log.Debug().Str("path", w.path).Msg("stopped")
}

// Running reports whether the watcher is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if w.matches(ev) {
				w.log.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("change detected")
				w.onChange(ev)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// matches reports whether ev is a write, create or rename of the watched
// file.
func (w *Watcher) matches(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return filepath.Base(filepath.Clean(ev.Name)) == w.name
}
