package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chazuruo/scene/internal/config"
	sceneerrors "github.com/chazuruo/scene/internal/errors"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage scene's configuration file",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

// ConfigInitOptions contains the options for config init.
type ConfigInitOptions struct {
	Force bool
}

func newConfigInitCommand() *cobra.Command {
	opts := &ConfigInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Long: `Write a config file. In a terminal a short form lets you adjust the
most common settings first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil && !sceneerrors.IsNotFound(err) {
				return err
			}
			if cfg == nil {
				cfg = config.DefaultConfig()
			}
			return runConfigInit(cmd, opts, cfg)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, opts *ConfigInitOptions, cfg *config.Config) error {
	path := configFilePath()
	if path == "" {
		return fmt.Errorf("cannot determine config location; pass --config: %w", sceneerrors.ErrInvalid)
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return &sceneerrors.ConfigError{Path: path, Err: fmt.Errorf("config file already exists; use --force to overwrite: %w", sceneerrors.ErrAlreadyExists)}
	}

	if isInteractive(cfg) {
		if err := configForm(cfg).Run(); err != nil {
			if err == huh.ErrUserAborted {
				return sceneerrors.ErrCanceled
			}
			return fmt.Errorf("form error: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return &sceneerrors.ConfigError{Path: path, Err: err}
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// configForm edits the settings people change most.
func configForm(cfg *config.Config) *huh.Form {
	rows := strconv.Itoa(cfg.UI.PickerHeight)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workflows file").
				Description("Leave empty to keep workflows.json next to the scene binary").
				Value(&cfg.Store.Path),
			huh.NewConfirm().
				Title("Ask before running a workflow?").
				Value(&cfg.Runner.ConfirmRun),
			huh.NewConfirm().
				Title("Ask before deleting a workflow?").
				Value(&cfg.UI.ConfirmDelete),
			huh.NewInput().
				Title("Picker height").
				Value(&rows).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 3 {
						return fmt.Errorf("enter a number of at least 3")
					}
					cfg.UI.PickerHeight = n
					return nil
				}),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&cfg.Log.Level),
		),
	)
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after defaults and SCENE_* environment overrides.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the config file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
			return nil
		},
	}
}

// configFilePath is --config if given, otherwise the default location.
func configFilePath() string {
	if ConfigPath != "" {
		return ConfigPath
	}
	return config.DefaultConfigPath()
}
