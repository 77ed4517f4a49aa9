package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from GANTITT_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("GANTITT_ASSETS_DIR"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("GANTITT_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("GANTITT_STRICT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Strict = b
		}
	}
	if v := os.Getenv("GANTITT_STATE_LABEL"); v != "" {
		cfg.StateLabel = v
	}
	if v := os.Getenv("GANTITT_GOALS_LABEL"); v != "" {
		cfg.GoalsLabel = v
	}
	if v := os.Getenv("GANTITT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GANTITT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("GANTITT_WATCH_DEBOUNCE"); v != "" {
		cfg.WatchDebounce = v
	}
}
