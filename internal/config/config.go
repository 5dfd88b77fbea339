// Package config holds the shoptill terminal configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all shoptill configuration.
type Config struct {
	// BaseURL of the shop backend REST service.
	BaseURL string `yaml:"base_url"`

	// DataDir holds the draft cache and log files.
	DataDir string `yaml:"data_dir"`

	// Theme is "light" or "dark".
	Theme string `yaml:"theme"`

	// HTTPTimeout for backend calls, e.g. "10s".
	HTTPTimeout string `yaml:"http_timeout"`

	// SearchDebounce between a keystroke and the catalog lookup.
	SearchDebounce string `yaml:"search_debounce"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		BaseURL:        "http://127.0.0.1:8000",
		DataDir:        filepath.Join(home, ".shoptill"),
		Theme:          "dark",
		HTTPTimeout:    "10s",
		SearchDebounce: "200ms",
	}
}

// Load reads the config at path, falling back to defaults for a
// missing file. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// DefaultPath is where Load looks when --config is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shoptill.yaml"
	}
	return filepath.Join(home, ".shoptill", "config.yaml")
}

// Timeout parses HTTPTimeout with a safe fallback.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Debounce parses SearchDebounce with a safe fallback.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.SearchDebounce)
	if err != nil || d < 0 {
		return 200 * time.Millisecond
	}
	return d
}

// DraftDBPath is the sqlite file backing the draft cache.
func (c *Config) DraftDBPath() string {
	return filepath.Join(c.DataDir, "drafts.db")
}

// LogPath is the log file destination.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "shoptill.log")
}
