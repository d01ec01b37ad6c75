package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
)

// NewCopyCommand creates the copy command.
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy <workflow> [new-name]",
		Aliases: []string{"cp", "duplicate"},
		Short:   "Duplicate a workflow",
		Long: `Duplicate a workflow under a new name with a new id.

Without a new name the copy is called "<name> (copy)", or "<name> (copy N)"
when that is taken. In a terminal you are asked to confirm the name first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runCopy(s, args)
		},
	}

	return cmd
}

func runCopy(s *session, args []string) error {
	src, err := s.store.Resolve(args[0])
	if err != nil {
		return err
	}

	var newName string
	switch {
	case len(args) > 1:
		newName = strings.TrimSpace(args[1])
	case s.interactive:
		if newName, err = s.promptName("Name for the copy", s.store.SuggestCopyName(src.Name)); err != nil {
			return err
		}
	default:
		newName = s.store.SuggestCopyName(src.Name)
	}

	dup, err := s.store.Copy(src.ID, newName)
	if err != nil {
		return err
	}

	log.Info(log.CatCLI, "copied workflow", "from", src.ID, "to", dup.ID)
	fmt.Fprintf(s.out, "Copied %q to %q (%s)\n", src.Name, dup.Name, shortID(dup.ID))
	return nil
}

// DeleteOptions contains the options for the delete command.
type DeleteOptions struct {
	Yes bool
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	opts := &DeleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <workflow>",
		Aliases: []string{"rm"},
		Short:   "Delete a workflow",
		Long: `Delete a workflow permanently.

Asks for confirmation unless --yes is given or ui.confirm_delete is false.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runDelete(s, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking")

	return cmd
}

func runDelete(s *session, opts *DeleteOptions, ref string) error {
	wf, err := s.store.Resolve(ref)
	if err != nil {
		return err
	}

	if !opts.Yes && s.cfg.UI.ConfirmDelete {
		ok, err := s.confirm(fmt.Sprintf("Delete %q?", wf.Name),
			fmt.Sprintf("%d action(s) will be lost", len(wf.Actions)))
		if err != nil {
			return err
		}
		if !ok {
			return sceneerrors.ErrCanceled
		}
	}

	if !s.store.Remove(wf.ID) {
		return &sceneerrors.WorkflowError{Op: "delete", Err: sceneerrors.ErrNotFound, ID: wf.ID}
	}

	fmt.Fprintf(s.out, "Deleted %q\n", wf.Name)
	return nil
}

// confirm asks a yes/no question. Without a terminal there is nobody to
// ask, so it fails and tells the user about --yes.
func (s *session) confirm(title, description string) (bool, error) {
	if !s.interactive {
		return false, fmt.Errorf("confirmation required; pass --yes to proceed: %w", sceneerrors.ErrInvalid)
	}

	var ok bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return false, nil
		}
		return false, fmt.Errorf("form error: %w", err)
	}
	return ok, nil
}
