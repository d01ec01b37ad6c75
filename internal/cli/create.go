package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
	"github.com/chazuruo/scene/internal/workflows"
)

// CreateOptions contains the options for the create command.
type CreateOptions struct {
	Folders []string
	Files   []string
	Delay   float64
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	opts := &CreateOptions{}

	cmd := &cobra.Command{
		Use:     "create [name]",
		Aliases: []string{"new"},
		Short:   "Create a workflow",
		Long: `Create a new workflow, optionally with its first actions.

Folders are added before files, each in the order given. --delay applies
to every action added here; use 'scene action delay' to change one later.
Names must be unique (case-sensitive). Without a name a prompt asks for one.

Examples:
  scene create "Morning"
  scene create "Morning" --folder ~/projects --file ~/notes/todo.md --delay 1.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runCreate(s, opts, args)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Folders, "folder", nil, "folder to open (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Files, "file", nil, "file to open (repeatable)")
	cmd.Flags().Float64Var(&opts.Delay, "delay", 0, "seconds to wait before each added action")

	return cmd
}

func runCreate(s *session, opts *CreateOptions, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		var err error
		if name, err = s.promptName("New workflow", ""); err != nil {
			return err
		}
	}

	wf := workflows.New(strings.TrimSpace(name))

	add := func(kind workflows.Kind, paths []string) error {
		for _, p := range paths {
			abs, err := absPath(p, s.errOut)
			if err != nil {
				return err
			}
			if err := wf.AddAction(kind, abs, opts.Delay); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(workflows.KindFolder, opts.Folders); err != nil {
		return err
	}
	if err := add(workflows.KindFile, opts.Files); err != nil {
		return err
	}

	if err := s.store.Add(wf); err != nil {
		return err
	}

	log.Info(log.CatCLI, "created workflow", "id", wf.ID, "name", wf.Name)
	fmt.Fprintf(s.out, "Created workflow %q (%s) with %d action(s)\n", wf.Name, shortID(wf.ID), len(wf.Actions))
	return nil
}

// promptName asks for a workflow name, pre-filled with initial. It fails
// when prompting is not possible.
func (s *session) promptName(title, initial string) (string, error) {
	if !s.interactive {
		return "", fmt.Errorf("workflow name required: %w", sceneerrors.ErrInvalid)
	}

	name := initial
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Names must be unique").
				Value(&name).
				Validate(func(v string) error {
					v = strings.TrimSpace(v)
					if v == "" {
						return fmt.Errorf("name is required")
					}
					if s.store.IsNameDuplicate(v, "") {
						return fmt.Errorf("a workflow named %q already exists", v)
					}
					return nil
				}),
		),
	).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return "", sceneerrors.ErrCanceled
		}
		return "", fmt.Errorf("form error: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// NewRenameCommand creates the rename command.
func NewRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <workflow> <new-name>",
		Short: "Rename a workflow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runRename(s, args[0], args[1])
		},
	}
}

func runRename(s *session, ref, newName string) error {
	wf, err := s.store.Resolve(ref)
	if err != nil {
		return err
	}

	oldName := wf.Name
	wf.Name = strings.TrimSpace(newName)
	if err := s.store.Update(wf); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Renamed %q to %q\n", oldName, wf.Name)
	return nil
}
