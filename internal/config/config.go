// Package config provides configuration management for scene.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"strings"

	"github.com/chazuruo/scene/internal/log"
)

// Config is the top-level configuration struct for scene.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Runner RunnerConfig `toml:"runner"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig contains backing store settings.
type StoreConfig struct {
	// Path is the workflows JSON file. Empty means workflows.json next to
	// the scene executable.
	Path string `toml:"path"`
}

// RunnerConfig contains workflow execution settings.
type RunnerConfig struct {
	// ConfirmRun asks before a workflow starts opening things.
	ConfirmRun bool `toml:"confirm_run"`

	// DryRunByDefault makes `run` print the plan unless --dry-run=false.
	DryRunByDefault bool `toml:"dry_run_by_default"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// TUI enables the interactive picker and prompts (when false, commands
	// need explicit arguments).
	TUI bool `toml:"tui"`

	// ConfirmDelete prompts before a workflow is deleted.
	ConfirmDelete bool `toml:"confirm_delete"`

	// PickerHeight is the number of rows the workflow picker shows.
	PickerHeight int `toml:"picker_height"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum level written.
	// Valid values: "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// File receives log output instead of stderr when set.
	File string `toml:"file"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "",
		},
		Runner: RunnerConfig{
			ConfirmRun:      false,
			DryRunByDefault: false,
		},
		UI: UIConfig{
			TUI:           true,
			ConfirmDelete: true,
			PickerHeight:  10,
		},
		Log: LogConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if strings.ContainsRune(c.Store.Path, 0) {
		return fmt.Errorf("store.path contains a NUL byte")
	}
	if c.Store.Path != "" && !strings.EqualFold(extOf(c.Store.Path), ".json") {
		return fmt.Errorf("store.path must name a .json file; got %q", c.Store.Path)
	}

	if c.UI.PickerHeight < 3 {
		return fmt.Errorf("ui.picker_height must be >= 3; got %d", c.UI.PickerHeight)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}

// extOf returns the extension of the last path element, accepting both
// slash styles so a Windows path in the file validates on any OS.
func extOf(path string) string {
	base := path[strings.LastIndexAny(path, `/\`)+1:]
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[i:]
	}
	return ""
}
