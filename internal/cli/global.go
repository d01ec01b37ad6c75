// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chazuruo/scene/internal/config"
	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
	"github.com/chazuruo/scene/internal/runner"
	"github.com/chazuruo/scene/internal/tui"
	"github.com/chazuruo/scene/internal/workflows"
	"github.com/chazuruo/scene/internal/workflows/store"
)

var (
	// NoTUI indicates that TUI/interactive mode should be disabled.
	// This is set by the global --no-tui flag.
	NoTUI bool

	// ConfigPath overrides the config file location (--config).
	ConfigPath string

	// StorePath overrides the workflows file (--store).
	StorePath string

	// LogLevel overrides the configured log level (--log-level).
	LogLevel string

	// noTUIMutex protects NoTUI for concurrent access.
	noTUIMutex sync.RWMutex
)

// newLauncher and newSleeper build the runner's collaborators. Tests swap
// them for fakes.
var (
	newLauncher = func() runner.Launcher { return runner.NewOSLauncher() }
	newSleeper  = func() runner.Sleeper { return runner.SleeperFunc(runner.ContextSleep) }
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoTUI, "no-tui", false,
		"disable TUI/interactive mode; use plain text output and never prompt")
	cmd.PersistentFlags().StringVar(&ConfigPath, "config", "",
		"config file path (default: ~/.config/scene/config.toml)")
	cmd.PersistentFlags().StringVar(&StorePath, "store", "",
		"workflows file (default: workflows.json next to the scene binary)")
	cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "",
		"log level: debug, info, warn, error")
}

// IsNoTUI returns true if TUI mode is disabled.
func IsNoTUI() bool {
	noTUIMutex.RLock()
	defer noTUIMutex.RUnlock()
	return NoTUI
}

// loadConfig loads --config if given, otherwise the default location.
func loadConfig() (*config.Config, error) {
	if ConfigPath != "" {
		return config.Load(ConfigPath)
	}
	return config.LoadWithDefaults()
}

// setupLogging applies --log-level or the configured level and target.
func setupLogging(cfg *config.Config, stderr io.Writer) error {
	levelName := cfg.Log.Level
	if LogLevel != "" {
		levelName = LogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("%v: %w", err, sceneerrors.ErrInvalid)
	}

	w := stderr
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	}

	log.Init(w, level)
	return nil
}

// session bundles what a command needs once flags are parsed.
type session struct {
	cfg         *config.Config
	store       store.Store
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

// newSession loads config, sets up logging and opens the workflow store.
// An unreadable store is reported and replaced by an empty collection.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := setupLogging(cfg, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}

	m := store.New(resolveStorePath(cfg))
	if err := m.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: continuing with no workflows; the unreadable file is kept as %s.bak on the next save\n", m.Path())
	}

	return &session{
		cfg:         cfg,
		store:       m,
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
		interactive: isInteractive(cfg),
	}, nil
}

// resolveStorePath picks --store, then store.path, then the default.
func resolveStorePath(cfg *config.Config) string {
	if StorePath != "" {
		return StorePath
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return store.DefaultPath()
}

// isInteractive reports whether prompts and pickers may be shown.
func isInteractive(cfg *config.Config) bool {
	if IsNoTUI() || !cfg.UI.TUI {
		return false
	}
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveWorkflow finds the workflow named by args[0], or lets the user
// pick one when no argument is given.
func (s *session) resolveWorkflow(args []string, title string) (*workflows.Workflow, error) {
	if len(args) > 0 {
		return s.store.Resolve(args[0])
	}
	if !s.interactive {
		return nil, fmt.Errorf("workflow name or id required: %w", sceneerrors.ErrInvalid)
	}
	return tui.PickWorkflow(title, s.store.List(), s.cfg.UI.PickerHeight)
}

// parseIndex converts a 1-based action number into a 0-based index.
func parseIndex(arg string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("action number %q is not a number: %w", arg, sceneerrors.ErrInvalid)
	}
	if count == 0 {
		return 0, fmt.Errorf("workflow has no actions: %w", sceneerrors.ErrInvalid)
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("action number %d out of range 1-%d: %w", n, count, sceneerrors.ErrInvalid)
	}
	return n - 1, nil
}

// parseDelay parses a non-negative number of seconds.
func parseDelay(arg string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("delay %q is not a number: %w", arg, sceneerrors.ErrInvalid)
	}
	return d, nil
}

// absPath expands ~ and makes path absolute. A path that does not exist is
// kept but reported, since it only fails when the workflow runs.
func absPath(path string, warn io.Writer) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path is required: %w", sceneerrors.ErrInvalid)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		fmt.Fprintf(warn, "Warning: %s does not exist yet\n", abs)
	}
	return abs, nil
}
