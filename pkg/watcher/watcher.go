package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mkling/logbook/pkg/logger"
)

// watcher implements the Watcher interface using fsnotify.
type watcher struct {
	fsw    *fsnotify.Watcher
	logger logger.Logger
	config Config

	events chan Event
	errors chan error

	mu      sync.RWMutex
	target  string
	running bool
	closed  bool

	// Debouncing state.
	debounceTimer *time.Timer
	debounceMu    sync.Mutex
}

// New creates a new data file watcher.
func New(cfg Config, log logger.Logger) (Watcher, error) {
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 200 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &watcher{
		fsw:    fsw,
		logger: log,
		config: cfg,
		events: make(chan Event, 16),
		errors: make(chan error, 4),
	}

	log.Debug("file watcher created", "debounce_interval", cfg.DebounceInterval)

	return w, nil
}

// Watch implements Watcher.Watch.
func (w *watcher) Watch(ctx context.Context, path string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}

	target := expandHome(path)
	dir := filepath.Dir(target)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		w.mu.Unlock()
		return ErrInvalidPath
	}

	// Watch the directory, not the file. Editors and the save path both
	// replace the file, which would drop a direct file watch.
	if err := w.fsw.Add(dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w.target = target
	w.running = true
	w.mu.Unlock()

	w.logger.Info("watching data file", "path", target)

	go w.processEvents(ctx)

	return nil
}

// Events implements Watcher.Events.
func (w *watcher) Events() <-chan Event {
	return w.events
}

// Errors implements Watcher.Errors.
func (w *watcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.closed = true
	w.running = false

	w.debounceMu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.debounceMu.Unlock()

	close(w.events)
	close(w.errors)

	if err := w.fsw.Close(); err != nil {
		w.logger.Error("failed to close fsnotify watcher", "error", err)
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	w.logger.Info("watcher closed")
	return nil
}

// processEvents handles events from fsnotify.
func (w *watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", "reason", "context cancelled")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Error("fsnotify error", "error", err)

			select {
			case w.errors <- err:
			default:
				w.logger.Warn("error channel full, dropping error")
			}
		}
	}
}

// handleEvent filters directory events down to changes of the target file.
func (w *watcher) handleEvent(event fsnotify.Event) {
	w.mu.RLock()
	target := w.target
	w.mu.RUnlock()

	if event.Name != target {
		return
	}

	// Write covers in-place edits; Create and Rename cover atomic replace.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("data file event", "op", event.Op.String())

	w.debounceEvent(Event{
		Path:      target,
		Timestamp: time.Now(),
	})
}

// debounceEvent coalesces a burst of changes into a single emission.
func (w *watcher) debounceEvent(event Event) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.config.DebounceInterval, func() {
		w.mu.RLock()
		closed := w.closed
		w.mu.RUnlock()

		if closed {
			return
		}

		select {
		case w.events <- event:
		default:
			w.logger.Warn("event channel full, dropping event")
		}
	})
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
