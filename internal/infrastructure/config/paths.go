package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const dataDirName = ".colonial"

// DataDir returns ~/.colonial, or the working directory when the home
// directory cannot be determined
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}

// DefaultDatabasePath is the sqlite file holding local preferences
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), "colonial.db")
}

// EnsureDir creates the parent directory of a file-backed sqlite path
func EnsureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return nil
}
