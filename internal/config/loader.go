package config

// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
)

// DefaultConfigPath returns where scene keeps its config file:
// $XDG_CONFIG_HOME/scene/config.toml, or ~/.config/scene/config.toml.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scene", "config.toml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "scene", "config.toml")
}

// DetectConfigPath returns the config file path if one exists, or an
// empty string (caller should use defaults).
func DetectConfigPath() string {
	configPath := DefaultConfigPath()
	if configPath == "" {
		return ""
	}
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}
	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &sceneerrors.ConfigError{Path: path, Err: fmt.Errorf("config file not found: %w", sceneerrors.ErrNotFound)}
		}
		return nil, &sceneerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &sceneerrors.ConfigError{Path: path, Err: fmt.Errorf("failed to parse config file: %w", err)}
	}

	applyEnvOverrides(cfg)
	expandPath(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, &sceneerrors.ConfigError{Path: path, Err: fmt.Errorf("config validation failed: %w", err)}
	}

	log.Debug(log.CatConfig, "loaded config", "path", path)
	return cfg, nil
}

// LoadWithDefaults loads the config at the default location. If no config
// file is found, returns a config with all default values (plus env
// overrides). If a config file is found but fails to load or validate,
// returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPath(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &sceneerrors.ConfigError{Err: fmt.Errorf("config validation failed: %w", err)}
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: SCENE_<SECTION>_<FIELD>
//
// Examples:
// - SCENE_STORE_PATH overrides [store].path
// - SCENE_LOG_LEVEL overrides [log].level
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Store section
	applyString("SCENE_STORE_PATH", &c.Store.Path)

	// Runner section
	applyBool("SCENE_RUNNER_CONFIRM_RUN", &c.Runner.ConfirmRun)
	applyBool("SCENE_RUNNER_DRY_RUN_BY_DEFAULT", &c.Runner.DryRunByDefault)

	// UI section
	applyBool("SCENE_UI_TUI", &c.UI.TUI)
	applyBool("SCENE_UI_CONFIRM_DELETE", &c.UI.ConfirmDelete)
	applyInt("SCENE_UI_PICKER_HEIGHT", &c.UI.PickerHeight)

	// Log section
	applyString("SCENE_LOG_LEVEL", &c.Log.Level)
	applyString("SCENE_LOG_FILE", &c.Log.File)
}

// expandPath expands ~ to the home directory in path settings.
func expandPath(c *Config) {
	c.Store.Path = expandHome(c.Store.Path)
	c.Log.File = expandHome(c.Log.File)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") && path != "~" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
