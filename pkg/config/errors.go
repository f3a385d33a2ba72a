package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoDataPath is returned when no data file path is configured.
	ErrNoDataPath = errors.New("no data file path specified")

	// ErrNoArchivePath is returned when no archive database path is configured.
	ErrNoArchivePath = errors.New("no archive database path specified")

	// ErrInvalidDisplayFormat is returned when the display format is not recognized.
	ErrInvalidDisplayFormat = errors.New("invalid display format: must be table, simple, or json")

	// ErrInvalidWidth is returned when the display width is negative.
	ErrInvalidWidth = errors.New("invalid display width: must be >= 0")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when the log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrInvalidDebounce is returned when the watch debounce is <= 0.
	ErrInvalidDebounce = errors.New("invalid watch debounce: must be > 0")

	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
