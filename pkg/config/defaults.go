package config

import (
	"os"
	"path/filepath"
)

// defaultDataPath returns the default logbook document path.
//
// Returns: ~/.config/logbook/logbook.json.
func defaultDataPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./logbook.json"
	}

	return filepath.Join(homeDir, ".config", "logbook", "logbook.json")
}

// defaultArchivePath returns the default archive database path.
//
// Returns: ~/.config/logbook/archive.db.
func defaultArchivePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./archive.db"
	}

	return filepath.Join(homeDir, ".config", "logbook", "archive.db")
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/logbook/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "logbook", "config.yaml")
}
