package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Store.Path != "" {
		t.Errorf("expected empty store.path, got %q", cfg.Store.Path)
	}
	if cfg.Runner.ConfirmRun {
		t.Error("expected runner.confirm_run to default to false")
	}
	if cfg.Runner.DryRunByDefault {
		t.Error("expected runner.dry_run_by_default to default to false")
	}
	if !cfg.UI.TUI {
		t.Error("expected ui.tui to default to true")
	}
	if !cfg.UI.ConfirmDelete {
		t.Error("expected ui.confirm_delete to default to true")
	}
	if cfg.UI.PickerHeight != 10 {
		t.Errorf("expected ui.picker_height 10, got %d", cfg.UI.PickerHeight)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log.level warn, got %q", cfg.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "json store path",
			modify: func(c *Config) { c.Store.Path = "/data/workflows.json" },
		},
		{
			name:   "windows store path",
			modify: func(c *Config) { c.Store.Path = `C:\Users\me\Scenes.JSON` },
		},
		{
			name:    "store path without json extension",
			modify:  func(c *Config) { c.Store.Path = "/data/workflows.yaml" },
			wantErr: "store.path",
		},
		{
			name:    "store path that is a dot file",
			modify:  func(c *Config) { c.Store.Path = "/data/.json" },
			wantErr: "store.path",
		},
		{
			name:    "picker too small",
			modify:  func(c *Config) { c.UI.PickerHeight = 2 },
			wantErr: "ui.picker_height",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:   "info log level",
			modify: func(c *Config) { c.Log.Level = "INFO" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
