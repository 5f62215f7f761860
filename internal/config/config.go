// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvDB            = "DEPOTNOTES_DB"
	EnvData          = "DEPOTNOTES_DATA"
	EnvLogUseCases   = "DEPOTNOTES_LOG_USE_CASES"
	EnvWatchDebounce = "DEPOTNOTES_WATCH_DEBOUNCE_MS"
	EnvHistoryLimit  = "DEPOTNOTES_HISTORY_LIMIT"
)

// LocalDataDir is picked up when present in the working directory.
const LocalDataDir = "./data"

// Config holds everything the binary needs before wiring services.
type Config struct {
	DBPath        string
	DataDir       string // empty means the embedded dataset
	LogUseCases   bool
	WatchDebounce time.Duration
	HistoryLimit  int
}

// DefaultConfig returns the settings used when nothing is set.
func DefaultConfig() Config {
	return Config{
		WatchDebounce: 300 * time.Millisecond,
		HistoryLimit:  20,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or unparseable values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv(EnvDB)
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".depotnotes", "depotnotes.db")
	}

	cfg.DataDir = os.Getenv(EnvData)
	if cfg.DataDir == "" {
		if stat, err := os.Stat(LocalDataDir); err == nil && stat.IsDir() {
			cfg.DataDir = LocalDataDir
		}
	}

	if v := os.Getenv(EnvLogUseCases); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv(EnvWatchDebounce); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WatchDebounce = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv(EnvHistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}

	return cfg, nil
}
