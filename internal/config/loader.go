package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file (written with defaults when absent)
// 3. Override with environment variables
// 4. Validate
func (l *Loader) Load() (*Config, error) {
	// Environment may relocate the data directory, so apply it before the
	// config file path is resolved.
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := loadOrCreateFile(l.config.GetConfigFilePath(), l.config); err != nil {
		return nil, err
	}

	// Environment variables win over the file.
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadOrCreateFile reads a TOML config file into cfg, writing the current
// values as a starter file when none exists yet.
func loadOrCreateFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return writeFile(path, cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, cfg)
}

func writeFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
