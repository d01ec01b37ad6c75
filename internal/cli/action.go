package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/scene/internal/workflows"
)

// ActionAddOptions contains the options for action add.
type ActionAddOptions struct {
	Delay float64
	At    int
}

// NewActionCommand creates the action command group.
func NewActionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Add, remove, reorder and adjust a workflow's actions",
		Long: `Edit the actions of a workflow.

Actions are numbered from 1 in the order 'scene show' prints them.`,
	}

	cmd.AddCommand(newActionAddCommand())
	cmd.AddCommand(newActionRemoveCommand())
	cmd.AddCommand(newActionMoveCommand())
	cmd.AddCommand(newActionDelayCommand())
	cmd.AddCommand(newActionRevealCommand())

	return cmd
}

func newActionAddCommand() *cobra.Command {
	opts := &ActionAddOptions{}

	cmd := &cobra.Command{
		Use:   "add <workflow> <folder|file> <path>",
		Short: "Append a folder or file to a workflow",
		Example: `  scene action add Morning folder ~/projects
  scene action add Morning file ~/notes/todo.md --delay 2 --at 1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runActionAdd(s, opts, args[0], args[1], args[2])
		},
	}

	cmd.Flags().Float64Var(&opts.Delay, "delay", 0, "seconds to wait before opening")
	cmd.Flags().IntVar(&opts.At, "at", 0, "insert at this position instead of appending")

	return cmd
}

func runActionAdd(s *session, opts *ActionAddOptions, ref, kindArg, path string) error {
	wf, err := s.store.Resolve(ref)
	if err != nil {
		return err
	}

	kind, err := workflows.ParseKind(kindArg)
	if err != nil {
		return err
	}
	abs, err := absPath(path, s.errOut)
	if err != nil {
		return err
	}
	if err := wf.AddAction(kind, abs, opts.Delay); err != nil {
		return err
	}

	position := len(wf.Actions)
	if opts.At != 0 {
		to, err := parseIndex(fmt.Sprint(opts.At), len(wf.Actions))
		if err != nil {
			return err
		}
		if err := wf.MoveAction(len(wf.Actions)-1, to); err != nil {
			return err
		}
		position = to + 1
	}

	if err := s.store.Update(wf); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Added %s %s to %q as action %d\n", kind, abs, wf.Name, position)
	return nil
}

func newActionRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <workflow> <n>",
		Aliases: []string{"rm"},
		Short:   "Remove action n from a workflow",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			wf, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1], len(wf.Actions))
			if err != nil {
				return err
			}

			removed := wf.Actions[i]
			wf.RemoveAction(i)
			if err := s.store.Update(wf); err != nil {
				return err
			}

			fmt.Fprintf(s.out, "Removed %s %s from %q\n", removed.Kind, removed.Path, wf.Name)
			return nil
		},
	}
}

func newActionMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <workflow> <from> <to>",
		Short: "Move an action to another position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			wf, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			from, err := parseIndex(args[1], len(wf.Actions))
			if err != nil {
				return err
			}
			to, err := parseIndex(args[2], len(wf.Actions))
			if err != nil {
				return err
			}

			if err := wf.MoveAction(from, to); err != nil {
				return err
			}
			if err := s.store.Update(wf); err != nil {
				return err
			}

			fmt.Fprintf(s.out, "Moved action %d to position %d in %q\n", from+1, to+1, wf.Name)
			return nil
		},
	}
}

func newActionDelayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delay <workflow> <n> <seconds>",
		Short: "Set how long to wait before action n",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			wf, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1], len(wf.Actions))
			if err != nil {
				return err
			}
			delay, err := parseDelay(args[2])
			if err != nil {
				return err
			}

			if err := wf.SetDelay(i, delay); err != nil {
				return err
			}
			if err := s.store.Update(wf); err != nil {
				return err
			}

			fmt.Fprintf(s.out, "Action %d of %q now waits %s\n", i+1, wf.Name, wf.Actions[i].Wait())
			return nil
		},
	}
}

func newActionRevealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <workflow> <n>",
		Short: "Open the folder of action n in the file manager",
		Long: `Open the folder an action points at. For a file action this is the
folder containing the file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			wf, err := s.store.Resolve(args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1], len(wf.Actions))
			if err != nil {
				return err
			}

			return newLauncher().Reveal(cmd.Context(), wf.Actions[i].Path)
		},
	}
}
