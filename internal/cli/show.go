package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/export"
	"github.com/chazuruo/scene/internal/workflows"
)

// ShowOptions contains the options for the show command.
type ShowOptions struct {
	Format string
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:     "show [workflow]",
		Aliases: []string{"view"},
		Short:   "Show a workflow's actions",
		Long: `Display a workflow and its actions in order.

The workflow can be named by its exact name, its id, or a unique prefix
of at least four characters of its id. Without an argument a picker opens.

Output formats:
- text (default): numbered action list
- md, yaml, json: same output as export`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runShow(s, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "output format (text, md, yaml, json)")

	return cmd
}

func runShow(s *session, opts *ShowOptions, args []string) error {
	wf, err := s.resolveWorkflow(args, "Show workflow")
	if err != nil {
		return err
	}

	if opts.Format == "" || opts.Format == "text" {
		printWorkflowFormatted(s.out, wf)
		return nil
	}

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("%v: %w", err, sceneerrors.ErrInvalid)
	}
	exporter, err := export.NewExporter(export.Options{Format: format})
	if err != nil {
		return err
	}
	out, err := exporter.Render(wf)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	return nil
}

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// printWorkflowFormatted prints a workflow in formatted text.
func printWorkflowFormatted(w io.Writer, wf *workflows.Workflow) {
	fmt.Fprintf(w, "%s  %s\n", nameStyle.Render(wf.Name), dimStyle.Render("id "+wf.ID))

	if len(wf.Actions) == 0 {
		fmt.Fprintln(w, "  (no actions)")
		return
	}

	width := 0
	for _, a := range wf.Actions {
		width = max(width, len(a.Kind.Label()))
	}

	for i, a := range wf.Actions {
		line := fmt.Sprintf("  %d. %-*s  %s", i+1, width, a.Kind.Label(), a.Path)
		if wait := a.Wait(); wait > 0 {
			line += "  " + dimStyle.Render("after "+wait.String())
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total delay: %s\n", wf.TotalDelay())
}
