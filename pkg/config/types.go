// Package config provides application configuration for logbook.
//
// Configuration is loaded with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (YAML)
// 3. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("data file: %s\n", cfg.Storage.DataPath)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Storage.DataPath must be non-empty
// - Storage.ArchivePath must be non-empty
// - Display.DefaultFormat must be table, simple, or json
// - Logging.Level must be debug, info, warn, or error
// - Logging.Format must be text or json
// - Watch.Debounce must be > 0.
type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Watch settings
	Watch WatchConfig `yaml:"watch"`
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	// Path to the logbook JSON document
	DataPath string `yaml:"data_path"`

	// Path to the BoltDB archive of deleted records
	ArchivePath string `yaml:"archive_path"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Default output format (table, simple, json)
	DefaultFormat string `yaml:"default_format"`

	// Fixed render width; 0 means detect from the terminal
	Width int `yaml:"width"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// WatchConfig contains settings for the watch command.
type WatchConfig struct {
	// Debounce interval for data file change events
	Debounce time.Duration `yaml:"debounce"`
}

// Validate checks if the configuration satisfies all invariants.
func (c *Config) Validate() error {
	if c.Storage.DataPath == "" {
		return ErrNoDataPath
	}
	if c.Storage.ArchivePath == "" {
		return ErrNoArchivePath
	}

	validFormats := map[string]bool{
		"table":  true,
		"simple": true,
		"json":   true,
	}
	if !validFormats[c.Display.DefaultFormat] {
		return ErrInvalidDisplayFormat
	}
	if c.Display.Width < 0 {
		return ErrInvalidWidth
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	if c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataPath:    defaultDataPath(),
			ArchivePath: defaultArchivePath(),
		},
		Display: DisplayConfig{
			DefaultFormat: "table",
			Width:         0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}
