package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// projectConfigNames are checked in order; the first one found is used.
var projectConfigNames = []string{
	"gantitt.toml",
	".gantitt.toml",
	"gantitt.yaml",
	".gantitt.yaml",
	"gantitt.yml",
	".gantitt.yml",
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file ($XDG_CONFIG_HOME/gantitt/config.toml or .yaml)
// 3. Project config file in dir (gantitt.toml, .gantitt.toml, gantitt.yaml, ...)
// 4. Environment variables
// Command-line flags are applied afterwards by the CLI.
func Load(dir string) (*Config, error) {
	cfg := Default()

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if path := findProjectConfigFile(dir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	if err := finalizeConfig(cfg, dir); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// loadConfigFile decodes TOML or YAML by extension. Keys absent from the
// file keep their current values.
func loadConfigFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return err
		}
	default:
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig resolves relative paths against dir and validates.
func finalizeConfig(cfg *Config, dir string) error {
	cfg.AssetsDir = resolvePath(cfg.AssetsDir, dir)
	if cfg.OutputDir != "" {
		cfg.OutputDir = resolvePath(cfg.OutputDir, dir)
	}
	return cfg.Validate()
}

func findProjectConfigFile(dir string) string {
	for _, name := range projectConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func findUserConfigFile() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(cfgDir, "gantitt", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
