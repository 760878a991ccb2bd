package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".stride"

// DataDir returns the base data directory for stride.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// SessionPath returns the path to the persisted session file.
func SessionPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "session.json"), nil
}

// AppStatePath returns the path to the persisted UI state file.
func AppStatePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.json"), nil
}

// DBPath returns the path to the bbolt database used when the store
// backend is "bbolt".
func DBPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "stride.db"), nil
}

// UILogPath returns the path of the TUI log file.
func UILogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "ui.log"), nil
}
