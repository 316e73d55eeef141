// Package storage persists perft results across runs.
package storage

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName  = "chesscore"
	perftDir = "perft"

	// DataEnv overrides the platform data directory.
	DataEnv = "CHESSCORE_DATA"
)

// GetDataDir returns the data directory for chesscore, creating it if needed.
// CHESSCORE_DATA wins; otherwise the platform convention is used:
// - macOS: ~/Library/Application Support/chesscore/
// - Linux: $XDG_DATA_HOME/chesscore/ or ~/.local/share/chesscore/
// - Windows: %APPDATA%/chesscore/
func GetDataDir() (string, error) {
	dir := os.Getenv(DataEnv)
	if dir == "" {
		base, err := platformDataHome()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, appName)
	}
	return ensureDir(dir)
}

// GetDatabaseDir returns the directory holding the BadgerDB perft cache.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dbDir, err := ensureDir(filepath.Join(dataDir, perftDir))
	if err != nil {
		return "", err
	}
	log.Printf("perft cache directory: %s", dbDir)
	return dbDir, nil
}

func platformDataHome() (string, error) {
	var env string
	var fallback []string
	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
