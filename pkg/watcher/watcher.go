// Package watcher reports external changes to a managed configuration file.
// A caller holding a parsed document has no way to notice another process
// rewriting ossec.conf underneath it; the watcher surfaces those writes as
// events so the caller can reload or warn. It never reloads anything itself
// and does not coordinate concurrent writers.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Event describes one observed change to the watched file.
type Event struct {
	Path string
	Op   string
	Time time.Time
}

// Watcher observes a single file for writes, creates, removals, and
// renames, debouncing bursts into one event.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
	started bool
	events  chan Event

	closeOnce sync.Once
	closeErr  error
}

// New creates a watcher for the file at path. A debounce of zero delivers
// every event immediately.
func New(path string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger.With().Str("component", "watcher").Str("file", abs).Logger(),
		fsw:      fsw,
		events:   make(chan Event, 16),
	}, nil
}

// Start begins watching and returns the event channel. The file's parent
// directory is watched and events are filtered to the file itself, so
// replace-by-rename edits keep being observed. The channel closes when ctx
// is cancelled or Stop is called. Start may be called once.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil, fmt.Errorf("watcher already started")
	}
	w.started = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w.logger.Info().Str("dir", dir).Msg("watching configuration file")

	go w.run(ctx)
	return w.events, nil
}

// Stop closes the watcher. It is safe to call more than once and after the
// context driving Start has been cancelled.
func (w *Watcher) Stop() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

func (w *Watcher) run(ctx context.Context) {
	defer func() {
		w.Stop()
		w.mu.Lock()
		w.stopped = true
		if w.pending != nil {
			w.pending.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watch error")
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	op := event.Op.String()
	w.logger.Debug().Str("op", op).Msg("file event")

	if w.debounce <= 0 {
		w.send(op)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		w.send(op)
	})
}

// send delivers an event unless the watcher has shut down. Delivery is
// non-blocking; when the channel is full the event is dropped.
func (w *Watcher) send(op string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	select {
	case w.events <- Event{Path: w.path, Op: op, Time: time.Now()}:
	default:
		w.logger.Warn().Str("op", op).Msg("event channel full, dropping event")
	}
}
