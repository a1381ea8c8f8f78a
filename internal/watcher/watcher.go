// Package watcher handles file system watching for individual artifacts.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/watchfire-io/progresswatch/internal/logging"
)

// ErrNoDir is returned by Start when the watched file's directory does not exist.
var ErrNoDir = errors.New("watch directory does not exist")

// Event represents a file system change to the watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher is a watch handle for a single file. The parent directory is
// watched so that the file may be created, replaced or deleted at any time.
type Watcher struct {
	path       string
	name       string
	dir        string
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	errorsChan chan error
	done       chan struct{}
	stopOnce   sync.Once
	logger     zerolog.Logger
}

// New creates a watcher for path. Nothing is registered until Start.
func New(path string) *Watcher {
	return &Watcher{
		path:       path,
		name:       filepath.Base(path),
		dir:        filepath.Dir(path),
		eventsChan: make(chan Event, 100),
		errorsChan: make(chan error, 1),
		done:       make(chan struct{}),
		logger:     logging.Component("watcher").With().Str("file", path).Logger(),
	}
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel for receiving events. A nil watcher returns a
// nil channel, which never delivers.
func (w *Watcher) Events() <-chan Event {
	if w == nil {
		return nil
	}
	return w.eventsChan
}

// Errors returns the channel for receiving watch errors.
func (w *Watcher) Errors() <-chan error {
	if w == nil {
		return nil
	}
	return w.errorsChan
}

// Active reports whether the watch is registered.
func (w *Watcher) Active() bool {
	return w != nil && w.fsWatcher != nil
}

// Start registers the watch on the file's directory.
func (w *Watcher) Start() error {
	if w.fsWatcher != nil {
		return fmt.Errorf("watcher for %s already started", w.path)
	}

	info, err := os.Stat(w.dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoDir, w.dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsWatcher.Add(w.dir); err != nil {
		_ = fsWatcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.fsWatcher = fsWatcher

	go w.processEvents()

	w.logger.Debug().Str("dir", w.dir).Msg("watching")
	return nil
}

// Stop releases the watch. It is safe to call on a nil, unstarted or
// already stopped watcher.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.stopOnce.Do(func() {
		close(w.done)
		if w.fsWatcher != nil {
			_ = w.fsWatcher.Close()
		}
		w.logger.Debug().Msg("stopped")
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
			select {
			case w.errorsChan <- err:
			default:
			}
		}
	}
}

// handleEvent forwards events naming the watched file. Every op counts:
// atomic writes (write tmp, rename to target) show up as Create or Rename
// on the target, and a Remove must re-render the waiting state.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.name {
		return
	}
	w.logger.Trace().Str("op", event.Op.String()).Msg("fsnotify")

	select {
	case w.eventsChan <- Event{Path: event.Name, Op: event.Op}:
	case <-w.done:
	}
}
