// Package export renders a workflow as Markdown, YAML or JSON.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/chazuruo/scene/internal/workflows"
)

// Format represents the export format.
type Format string

const (
	// FormatMarkdown exports as Markdown.
	FormatMarkdown Format = "md"
	// FormatYAML exports as YAML.
	FormatYAML Format = "yaml"
	// FormatJSON exports as JSON.
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Exporter exports workflows in various formats.
type Exporter struct {
	format   Format
	outPath  string
	template *template.Template
}

// Options contains export options.
type Options struct {
	Format Format
	// Out is the file written by Export. Empty or "-" writes nothing.
	Out string
	// CustomTemplate replaces the built-in Markdown template.
	CustomTemplate string
}

// NewExporter creates a new exporter.
func NewExporter(opts Options) (*Exporter, error) {
	e := &Exporter{
		format:  opts.Format,
		outPath: opts.Out,
	}

	switch e.format {
	case FormatYAML, FormatJSON:
		if opts.CustomTemplate != "" {
			return nil, fmt.Errorf("custom templates only apply to %s", FormatMarkdown)
		}
	case FormatMarkdown:
		tmpl, err := loadTemplate(opts.CustomTemplate)
		if err != nil {
			return nil, err
		}
		e.template = tmpl
	default:
		return nil, fmt.Errorf("unsupported format: %s", e.format)
	}

	return e, nil
}

func loadTemplate(customPath string) (*template.Template, error) {
	content := builtinMarkdownTemplate
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		content = string(data)
	}

	tmpl, err := template.New("export").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return tmpl, nil
}

// Render returns the exported form of wf without writing any file.
func (e *Exporter) Render(wf *workflows.Workflow) (string, error) {
	switch e.format {
	case FormatYAML:
		data, err := workflows.MarshalWorkflow(wf)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatJSON:
		data, err := json.MarshalIndent(wf, "", "    ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal workflow: %w", err)
		}
		return string(data) + "\n", nil
	}

	var buf bytes.Buffer
	if err := e.template.Execute(&buf, templateData(wf)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// Export renders wf and writes it to the configured output file, if any.
func (e *Exporter) Export(wf *workflows.Workflow) (string, error) {
	output, err := e.Render(wf)
	if err != nil {
		return "", err
	}

	if e.outPath != "" && e.outPath != "-" {
		if dir := filepath.Dir(e.outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return "", fmt.Errorf("creating output directory: %w", err)
			}
		}
		if err := os.WriteFile(e.outPath, []byte(output), 0644); err != nil {
			return "", fmt.Errorf("writing output file: %w", err)
		}
	}

	return output, nil
}

// DefaultFileName is the file name used when exporting wf without --out.
func DefaultFileName(wf *workflows.Workflow, format Format) string {
	return workflows.Slugify(wf.Name) + format.Ext()
}

// templateData creates template data from workflow.
func templateData(wf *workflows.Workflow) map[string]interface{} {
	actions := make([]map[string]interface{}, len(wf.Actions))
	for i, a := range wf.Actions {
		actions[i] = map[string]interface{}{
			"index": i + 1,
			"kind":  a.Kind.Label(),
			"path":  a.Path,
			"delay": a.Delay,
			"wait":  a.Wait().String(),
		}
	}

	return map[string]interface{}{
		"ID":         wf.ID,
		"Name":       wf.Name,
		"Actions":    actions,
		"TotalDelay": wf.TotalDelay().String(),
	}
}

// builtinMarkdownTemplate is the default Markdown template.
const builtinMarkdownTemplate = "# {{.Name}}\n\n**ID:** `{{.ID}}`\n\n## Actions\n\n" +
	"{{if .Actions}}| # | Kind | Path | Delay |\n|---|---|---|---|\n" +
	"{{range .Actions}}| {{.index}} | {{.kind}} | `{{.path}}` | {{.wait}} |\n{{end}}" +
	"\n**Total delay:** {{.TotalDelay}}\n" +
	"{{else}}_No actions._\n{{end}}" +
	"\n---\n*Generated by scene*\n"
