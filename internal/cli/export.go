package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/export"
	"github.com/chazuruo/scene/internal/log"
	"github.com/chazuruo/scene/internal/workflows"
)

// ExportOptions contains the options for the export command.
type ExportOptions struct {
	Format   string
	Output   string
	Template string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export [workflow]",
		Short: "Export a workflow as Markdown, YAML or JSON",
		Long: `Export a workflow to share it or keep it under version control.

YAML and JSON exports can be read back with 'scene import'. Markdown is
for reading; --template replaces the built-in Markdown template with a
Go text/template file.

Examples:
  scene export Morning                       # Markdown to stdout
  scene export Morning -f yaml -o morning.yaml
  scene export Morning -t ~/my-template.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runExport(s, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "md", "export format (md, yaml, json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "custom Markdown template file")

	return cmd
}

func runExport(s *session, opts *ExportOptions, args []string) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("%v: %w", err, sceneerrors.ErrInvalid)
	}

	wf, err := s.resolveWorkflow(args, "Export workflow")
	if err != nil {
		return err
	}

	exporter, err := export.NewExporter(export.Options{
		Format:         format,
		Out:            opts.Output,
		CustomTemplate: opts.Template,
	})
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	output, err := exporter.Export(wf)
	if err != nil {
		return err
	}

	if opts.Output == "" || opts.Output == "-" {
		fmt.Fprint(s.out, output)
		return nil
	}

	log.Info(log.CatCLI, "exported workflow", "name", wf.Name, "format", format, "path", opts.Output)
	fmt.Fprintf(s.out, "Exported %q to %s\n", wf.Name, opts.Output)
	return nil
}

// ImportOptions contains the options for the import command.
type ImportOptions struct {
	Name string
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a workflow from a YAML or JSON file",
		Long: `Import a workflow exported with 'scene export -f yaml' or '-f json'.
Use - to read from stdin.

The imported workflow gets a new id if its id is already in use. Its name
must not be taken; use --name to import it under another name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			var wf *workflows.Workflow
			if args[0] == "-" {
				wf, err = workflows.LoadReader(cmd.InOrStdin())
			} else {
				wf, err = workflows.LoadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %v: %w", args[0], err, sceneerrors.ErrInvalid)
			}
			return runImport(s, opts, wf)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "import under this name")

	return cmd
}

func runImport(s *session, opts *ImportOptions, wf *workflows.Workflow) error {
	if name := strings.TrimSpace(opts.Name); name != "" {
		wf.Name = name
	}
	if _, exists := s.store.Get(wf.ID); exists {
		wf.ID = workflows.NewID()
	}

	if err := s.store.Add(wf); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Imported %q (%s) with %d action(s)\n", wf.Name, shortID(wf.ID), len(wf.Actions))
	return nil
}
