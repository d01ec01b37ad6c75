package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/tui"
)

// NewEditCommand creates the edit command.
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [workflow]",
		Short: "Reorder, remove and retime actions interactively",
		Long: `Open a workflow in the action editor.

Keys:
  j/k, up/down      move the cursor
  J/K, shift+arrow  move the selected action
  +/-               add or take 0.5s of delay, 0 clears it
  d                 remove the action
  o, enter          reveal the action's folder
  w, ctrl+s         save and quit
  q, esc            quit without saving

Requires a terminal; use 'scene action' in scripts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runEdit(cmd.Context(), s, args)
		},
	}

	return cmd
}

func runEdit(ctx context.Context, s *session, args []string) error {
	if !s.interactive {
		return fmt.Errorf("edit needs an interactive terminal; use 'scene action' instead: %w", sceneerrors.ErrInvalid)
	}

	wf, err := s.resolveWorkflow(args, "Edit workflow")
	if err != nil {
		return err
	}

	launcher := newLauncher()
	edited, changed, err := tui.EditActions(wf, func(path string) error {
		return launcher.Reveal(ctx, path)
	})
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(s.out, "No changes")
		return nil
	}

	if err := s.store.Update(edited); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %q\n", edited.Name)
	return nil
}
