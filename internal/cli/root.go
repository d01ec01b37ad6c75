package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
)

// Exit codes returned by the scene binary.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitDuplicate = 2
	ExitNotFound  = 3
	ExitLaunch    = 4
	ExitCanceled  = 13
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case sceneerrors.IsCanceled(err):
		return ExitCanceled
	case sceneerrors.IsDuplicateName(err):
		return ExitDuplicate
	case sceneerrors.IsNotFound(err):
		return ExitNotFound
	case sceneerrors.IsLaunch(err):
		return ExitLaunch
	default:
		return ExitError
	}
}

// NewRootCommand assembles the scene command tree.
func NewRootCommand(info VersionInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scene",
		Short: "Open sets of folders and files in one go",
		Long: `scene keeps named workflows: ordered lists of folders and files to open,
each after an optional delay. Running a workflow opens every entry with the
desktop's default application, in order.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date),
		SilenceUsage:  true,
		SilenceErrors: false,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewRenameCommand())
	rootCmd.AddCommand(NewActionCommand())
	rootCmd.AddCommand(NewCopyCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewEditCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand(info))

	return rootCmd
}
