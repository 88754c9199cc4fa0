// Package config loads the gutsync daemon configuration from YAML with
// defaults suitable for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// Config is the daemon configuration.
type Config struct {
	// DataDir holds the bolt store backing the simulated platform.
	DataDir string `yaml:"dataDir"`

	// MetricsAddr serves Prometheus metrics and health endpoints. Empty
	// disables the listener.
	MetricsAddr string `yaml:"metricsAddr"`

	Log LogConfig `yaml:"log"`

	// CoalesceWindow debounces change-notification bursts. Zero refreshes
	// on every notification.
	CoalesceWindow time.Duration `yaml:"coalesceWindow"`

	// Categories narrows the synchronized sets. Empty means all.
	Categories CategoryConfig `yaml:"categories"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// CategoryConfig narrows the read and write category sets.
type CategoryConfig struct {
	Read  []types.Category `yaml:"read"`
	Write []types.Category `yaml:"write"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir:     "./gutsync-data",
		MetricsAddr: "127.0.0.1:9464",
		Log:         LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown categories and misdirected sets.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	for _, cat := range c.Categories.Read {
		if !cat.Valid() {
			return fmt.Errorf("unknown read category: %s", cat)
		}
	}
	for _, cat := range c.Categories.Write {
		if !cat.Valid() {
			return fmt.Errorf("unknown write category: %s", cat)
		}
		if !writable(cat) {
			return fmt.Errorf("category is read-only: %s", cat)
		}
	}
	if c.CoalesceWindow < 0 {
		return fmt.Errorf("coalesceWindow must not be negative")
	}
	return nil
}

func writable(c types.Category) bool {
	for _, k := range types.WriteCategories {
		if c == k {
			return true
		}
	}
	return false
}
