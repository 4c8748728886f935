// Package config loads and saves the chirp CLI configuration.
//
// Configuration lives under os.UserConfigDir()/chirp/:
//
//	~/Library/Application Support/chirp/   (macOS)
//	~/.config/chirp/                       (Linux)
//	%AppData%/chirp/                       (Windows)
//
// Layout:
//
//	chirp/
//	├── config.yaml    # settings
//	└── runs/          # saved run database (BadgerDB), unless overridden
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "chirp"

	// configFile is the settings filename inside appDir.
	configFile = "config.yaml"

	// runsDir is the default run database directory inside appDir.
	runsDir = "runs"
)

// Config holds the CLI settings.
type Config struct {
	// Dir is the root configuration directory. Not stored in the file.
	Dir string `yaml:"-"`

	// StoreDir overrides where saved runs are kept.
	StoreDir string `yaml:"store_dir,omitempty"`

	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	// OutputFormat is the default result format (json or yaml).
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Load reads the configuration from the default location. A missing file
// yields a usable zero configuration rather than an error.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDir))
}

// LoadFrom reads the configuration rooted at a specific directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(c.Dir, configFile), data, 0o644)
}

// StorePath returns the run database directory, honoring StoreDir.
func (c *Config) StorePath() string {
	if c.StoreDir != "" {
		return c.StoreDir
	}
	return filepath.Join(c.Dir, runsDir)
}
