package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	assert.Equal(t, filepath.Join(xdg, "scene", "config.toml"), DefaultConfigPath())
	assert.Empty(t, DetectConfigPath())

	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "scene"), 0755))
	require.NoError(t, os.WriteFile(DefaultConfigPath(), []byte(""), 0644))
	assert.Equal(t, DefaultConfigPath(), DetectConfigPath())
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[store]
path = "/srv/scene/workflows.json"

[runner]
confirm_run = true

[ui]
tui = false
picker_height = 20

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/scene/workflows.json", cfg.Store.Path)
	assert.True(t, cfg.Runner.ConfirmRun)
	assert.False(t, cfg.Runner.DryRunByDefault)
	assert.False(t, cfg.UI.TUI)
	assert.True(t, cfg.UI.ConfirmDelete, "unset fields keep their defaults")
	assert.Equal(t, 20, cfg.UI.PickerHeight)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		notFound bool
	}{
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			notFound: true,
		},
		{
			name: "invalid toml",
			path: func(t *testing.T) string { return writeConfig(t, "[store\npath = 1") },
		},
		{
			name: "validation failure",
			path: func(t *testing.T) string { return writeConfig(t, "[log]\nlevel = \"loud\"\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			_, err := Load(path)
			require.Error(t, err)

			cerr, ok := sceneerrors.AsConfigError(err)
			require.True(t, ok, "expected ConfigError, got %T", err)
			assert.Equal(t, path, cerr.Path)
			assert.Equal(t, tt.notFound, sceneerrors.IsNotFound(err))
		})
	}
}

func TestLoadWithDefaults_NoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SCENE_LOG_LEVEL", "info")

	cfg, err := LoadWithDefaults()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.UI.TUI)
}

func TestEnvOverrides_String(t *testing.T) {
	t.Setenv("SCENE_STORE_PATH", "/env/workflows.json")
	t.Setenv("SCENE_LOG_FILE", "/tmp/scene.log")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "/env/workflows.json", cfg.Store.Path)
	assert.Equal(t, "/tmp/scene.log", cfg.Log.File)
}

func TestEnvOverrides_Bool(t *testing.T) {
	tests := []struct {
		envValue string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"off", false},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			t.Setenv("SCENE_UI_TUI", tt.envValue)
			t.Setenv("SCENE_RUNNER_DRY_RUN_BY_DEFAULT", tt.envValue)

			cfg := DefaultConfig()
			cfg.UI.TUI = !tt.expected
			cfg.Runner.DryRunByDefault = !tt.expected

			applyEnvOverrides(cfg)

			assert.Equal(t, tt.expected, cfg.UI.TUI)
			assert.Equal(t, tt.expected, cfg.Runner.DryRunByDefault)
		})
	}
}

func TestEnvOverrides_IntAndGarbage(t *testing.T) {
	t.Setenv("SCENE_UI_PICKER_HEIGHT", "25")
	t.Setenv("SCENE_UI_CONFIRM_DELETE", "maybe")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, 25, cfg.UI.PickerHeight)
	assert.True(t, cfg.UI.ConfirmDelete, "unrecognised bool leaves the default")
}

func TestEnvOverrides_EmptyValue(t *testing.T) {
	t.Setenv("SCENE_STORE_PATH", "")

	cfg := DefaultConfig()
	cfg.Store.Path = "/kept.json"
	applyEnvOverrides(cfg)

	assert.Equal(t, "/kept.json", cfg.Store.Path)
}

func TestLoad_WithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[store]\npath = \"/config/workflows.json\"\n\n[log]\nlevel = \"error\"\n")
	t.Setenv("SCENE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/config/workflows.json", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := DefaultConfig()
	cfg.Store.Path = "~/scene/workflows.json"
	cfg.Log.File = "/abs/scene.log"
	expandPath(cfg)

	assert.Equal(t, filepath.Join(home, "scene", "workflows.json"), cfg.Store.Path)
	assert.Equal(t, "/abs/scene.log", cfg.Log.File)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Store.Path = "/data/workflows.json"
	cfg.Runner.ConfirmRun = true
	require.NoError(t, Write(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[store]")
	assert.Contains(t, string(data), "confirm_run = true")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
