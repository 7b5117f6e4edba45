package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultDatabasePath returns the default transcript database location,
// following the XDG base directory spec for state data.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, "drover", "runs.db")
}

// DefaultCachePath returns the default cache directory path.
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "drover")
}

// DefaultDataPath returns the default data directory path.
func DefaultDataPath() string {
	return filepath.Join(xdg.DataHome, "drover")
}
