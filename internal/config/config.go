package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultConfigFileName is the TOML configuration file kept in the data directory.
const DefaultConfigFileName = "config.toml"

// Config holds all configuration options for the application
type Config struct {
	Data        DataConfig        `toml:"data"`
	Export      ExportConfig      `toml:"export"`
	Application ApplicationConfig `toml:"application"`
}

// DataConfig holds storage-related configuration
type DataConfig struct {
	Dir      string `toml:"dir" env:"PRIORIFY_DATA_DIR"`
	Filename string `toml:"filename" env:"PRIORIFY_DATA_FILENAME"`
}

// ExportConfig holds export-related configuration
type ExportConfig struct {
	FilenamePrefix string `toml:"filename_prefix" env:"PRIORIFY_EXPORT_PREFIX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"PRIORIFY_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"PRIORIFY_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(homeDir, ".priorify")

	return &Config{
		Data: DataConfig{
			Dir:      defaultDataDir,
			Filename: "priorify.db",
		},
		Export: ExportConfig{
			FilenamePrefix: "priorify-tasks",
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Data.Dir, c.Data.Filename)
}

// GetConfigFilePath returns the full path to the TOML configuration file
func (c *Config) GetConfigFilePath() string {
	return filepath.Join(c.Data.Dir, DefaultConfigFileName)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Data configuration
	if dir := os.Getenv("PRIORIFY_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if filename := os.Getenv("PRIORIFY_DATA_FILENAME"); filename != "" {
		c.Data.Filename = filename
	}

	// Export configuration
	if prefix := os.Getenv("PRIORIFY_EXPORT_PREFIX"); prefix != "" {
		c.Export.FilenamePrefix = prefix
	}

	// Application configuration
	if timeout := os.Getenv("PRIORIFY_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("PRIORIFY_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return &ConfigError{Field: "data.dir", Message: "data directory cannot be empty"}
	}
	if c.Data.Filename == "" {
		return &ConfigError{Field: "data.filename", Message: "data filename cannot be empty"}
	}
	if c.Export.FilenamePrefix == "" {
		return &ConfigError{Field: "export.filename_prefix", Message: "export filename prefix cannot be empty"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
