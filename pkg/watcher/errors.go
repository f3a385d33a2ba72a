package watcher

import "errors"

// Common errors returned by the watcher.
var (
	// ErrWatcherClosed is returned when attempting to use a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyStarted is returned when Watch is called twice.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrInvalidPath is returned when the watch path's directory is missing.
	ErrInvalidPath = errors.New("invalid watch path")
)
