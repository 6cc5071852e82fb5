// Package config holds the outer-glue configuration: where to listen, where
// to write output, and how often the serve mode refreshes. The pipeline's own
// constants (date window, venue whitelist, batch size, timezone) are fixed
// and not configurable.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the serve mode.
	Listen string `yaml:"listen"`

	// OutputDir is where cmd/generate writes calendar.ics and index.html.
	OutputDir string `yaml:"output_dir"`

	// CacheDir is where the serve mode keeps its screening cache.
	CacheDir string `yaml:"cache_dir"`

	// CacheTTLHours bounds how stale served screenings may get before a
	// request triggers a fresh aggregation.
	CacheTTLHours int `yaml:"cache_ttl_hours"`

	// RefreshCron is a cron-style schedule for background re-aggregation in
	// the serve mode, e.g. "0 6 * * *".
	RefreshCron string `yaml:"refresh"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        "127.0.0.1:8080",
		OutputDir:     "out",
		CacheDir:      "cache",
		CacheTTLHours: 6,
		RefreshCron:   "0 6 * * *",
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.CacheTTLHours <= 0 {
		c.CacheTTLHours = def.CacheTTLHours
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
}

// Load loads configuration from the given YAML path. A missing file is not
// an error: defaults are returned, so running without any config just works.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}
