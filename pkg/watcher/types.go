// Package watcher provides change notification for the logbook data file.
//
// It uses fsnotify to watch the file's parent directory, since many editors
// replace files on save rather than writing in place, and coalesces bursts
// of events into a single debounced notification.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 200 * time.Millisecond,
//	}, log)
//	if err != nil {
//	    log.Error("watch unavailable", "error", err)
//	}
//	defer w.Close()
//
//	if err := w.Watch(ctx, "~/.config/logbook/logbook.json"); err != nil {
//	    log.Error("watch failed", "error", err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Println("data file changed at", event.Timestamp)
//	}
package watcher

import (
	"context"
	"time"
)

// Event signals that the watched file changed.
type Event struct {
	// Path is the watched file's path.
	Path string

	// Timestamp is when the change was observed.
	Timestamp time.Time
}

// Watcher monitors a single file for changes.
type Watcher interface {
	// Watch begins watching the given file.
	//
	// The file does not have to exist yet; its parent directory does.
	// Returns ErrWatcherClosed on a closed watcher and ErrAlreadyStarted
	// if Watch was already called.
	Watch(ctx context.Context, path string) error

	// Events returns the channel for receiving debounced change events.
	// The channel is closed when the watcher closes.
	Events() <-chan Event

	// Errors returns the channel for non-fatal watcher errors.
	// The channel is closed when the watcher closes.
	Errors() <-chan error

	// Close stops watching and releases resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval is the time to wait before emitting an event.
	// Multiple changes within this interval are coalesced.
	// Default: 200ms.
	DebounceInterval time.Duration
}
