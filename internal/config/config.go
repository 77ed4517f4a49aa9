// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultAssetsDir     = "assets"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultWatchDebounce = "300ms"
)

// Config holds the full configuration for gantitt.
type Config struct {
	// AssetsDir holds frappe-gantt.min.js, frappe-gantt.min.css and the
	// optional template.html, chart.css and logo.svg overrides.
	AssetsDir string `toml:"assets_dir" yaml:"assets_dir"`

	// OutputDir, when set, receives every artifact. Otherwise artifacts are
	// written next to their input.
	OutputDir string `toml:"output_dir" yaml:"output_dir"`

	// Strict requires title, state and goals in every plan.
	Strict bool `toml:"strict" yaml:"strict"`

	// Label defaults used when a plan has no label directive.
	StateLabel string `toml:"state_label" yaml:"state_label"`
	GoalsLabel string `toml:"goals_label" yaml:"goals_label"`

	// Logging
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`

	// WatchDebounce is a Go duration string.
	WatchDebounce string `toml:"watch_debounce" yaml:"watch_debounce"`

	// Files lists the config files that were applied, lowest priority first.
	Files []string `toml:"-" yaml:"-"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	cfg.AssetsDir = DefaultAssetsDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.WatchDebounce = DefaultWatchDebounce
}

// Debounce parses WatchDebounce.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil || d < 0 {
		d, _ = time.ParseDuration(DefaultWatchDebounce)
	}
	return d
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q: want text, json or logfmt", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if _, err := time.ParseDuration(c.WatchDebounce); err != nil {
		return fmt.Errorf("invalid watch_debounce %q: %w", c.WatchDebounce, err)
	}
	return nil
}
