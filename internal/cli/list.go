package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/workflows"
)

// OutputFormat defines the output format for the list command.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

// ListOptions contains the options for the list command.
type ListOptions struct {
	Format string
}

// NewListCommand creates the list command for listing workflows.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List workflows",
		Long: `List all saved workflows, sorted by name.

Examples:
  scene list                  # Table with action counts and total delay
  scene list --format json    # Full workflows as JSON
  scene list --format plain   # One workflow per line`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runList(s, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runList(s *session, opts *ListOptions) error {
	wfs := s.store.List()

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printTable(s.out, wfs)
	case FormatJSON:
		return printJSON(s.out, wfs)
	case FormatPlain:
		printPlain(s.out, wfs)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or plain): %w", opts.Format, sceneerrors.ErrInvalid)
	}

	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// printTable prints workflows in table format.
func printTable(w io.Writer, wfs []*workflows.Workflow) {
	if len(wfs) == 0 {
		fmt.Fprintln(w, "No workflows found.")
		return
	}

	tbl := table.New("NAME", "ACTIONS", "TOTAL DELAY", "ID").
		WithWriter(w).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return headerStyle.Render(fmt.Sprintf(format, vals...))
		})

	for _, wf := range wfs {
		tbl.AddRow(wf.Name, len(wf.Actions), wf.TotalDelay(), shortID(wf.ID))
	}
	tbl.Print()

	fmt.Fprintf(w, "\nTotal: %d workflow(s)\n", len(wfs))
}

// printJSON prints workflows in JSON format.
func printJSON(w io.Writer, wfs []*workflows.Workflow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(wfs)
}

// printPlain prints workflows in plain text format.
func printPlain(w io.Writer, wfs []*workflows.Workflow) {
	for _, wf := range wfs {
		fmt.Fprintf(w, "%s\t%s\t%d\n", wf.ID, wf.Name, len(wf.Actions))
	}
}

// shortID returns enough of an id to pass to Resolve.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
