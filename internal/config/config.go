// Package config loads the ecometer configuration file. Configuration is
// deliberately small: logging, where the reference dataset and gazetteer
// live, and batch concurrency. Flags override the file, the file overrides
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ecometer/ecometer/internal/logging"
)

// DefaultDirName is the per-user configuration directory under $HOME.
const DefaultDirName = ".ecometer"

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is a zerolog level string. Default "info".
	Level string `yaml:"level"`

	// Format is "console" or "json". Default "console".
	Format string `yaml:"format"`

	// File, when set, appends logs to this path instead of stderr.
	File string `yaml:"file,omitempty"`
}

// GazetteerConfig selects the postcode gazetteer.
type GazetteerConfig struct {
	// SQLite is the path to a postcode database. Empty selects the
	// built-in district-level UK gazetteer.
	SQLite string `yaml:"sqlite,omitempty"`
}

// BatchConfig controls batch scoring.
type BatchConfig struct {
	// Concurrency caps in-flight scores; 0 means GOMAXPROCS.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Config is the full configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`

	// Dataset is the path to an external reference dataset file. Empty
	// selects the embedded dataset.
	Dataset string `yaml:"dataset,omitempty"`

	Gazetteer GazetteerConfig `yaml:"gazetteer"`
	Batch     BatchConfig     `yaml:"batch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// DefaultPath returns the default config file location
// ($HOME/.ecometer/config.yaml), or empty when the home directory cannot
// be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultDirName, "config.yaml")
}

// Load reads a config file over the defaults. A missing file at the
// default location is not an error — defaults apply; an explicitly named
// file must exist.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that would fail later in confusing places.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency must be >= 0, got %d", c.Batch.Concurrency)
	}
	return nil
}

// ToLoggingConfig bridges the config file section to the logging package.
func (c *Config) ToLoggingConfig() logging.Config {
	output := "stderr"
	if c.Logging.File != "" {
		output = "file"
	}
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: output,
		File:   c.Logging.File,
	}
}
