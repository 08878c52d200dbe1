package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "endecoder"

// Load loads configuration from ~/.config/endecoder/config.yaml.
func Load() Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	cfg.normalize()
	return cfg
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir holds user theme files.
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// ConfigDir is $XDG_CONFIG_HOME/endecoder or ~/.config/endecoder.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir is $XDG_DATA_HOME/endecoder or ~/.local/share/endecoder.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// StateDir is $XDG_STATE_HOME/endecoder or ~/.local/state/endecoder.
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// HistoryFile returns the history location for the configured backend.
func (c Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	if c.HistoryBackend == BackendSQLite {
		return filepath.Join(DataDir(), "history.db")
	}
	return filepath.Join(DataDir(), "history.json")
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
