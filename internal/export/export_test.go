package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/scene/internal/workflows"
)

func testWorkflow() *workflows.Workflow {
	return &workflows.Workflow{
		ID:   "test-123",
		Name: "Morning Routine",
		Actions: []workflows.Action{
			{Kind: workflows.KindFolder, Path: "/home/me/projects", Delay: 0},
			{Kind: workflows.KindFile, Path: "/home/me/todo.txt", Delay: 1.5},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "markdown format", opts: Options{Format: FormatMarkdown}},
		{name: "yaml format", opts: Options{Format: FormatYAML}},
		{name: "json format", opts: Options{Format: FormatJSON}},
		{name: "invalid format", opts: Options{Format: Format("invalid")}, wantErr: true},
		{name: "template with yaml", opts: Options{Format: FormatYAML, CustomTemplate: "x.tmpl"}, wantErr: true},
		{name: "missing template", opts: Options{Format: FormatMarkdown, CustomTemplate: "/nonexistent/x.tmpl"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExporter(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"md": FormatMarkdown, "Markdown": FormatMarkdown, "yml": FormatYAML, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestExportMarkdown(t *testing.T) {
	e, err := NewExporter(Options{Format: FormatMarkdown})
	require.NoError(t, err)

	out, err := e.Export(testWorkflow())
	require.NoError(t, err)

	for _, want := range []string{
		"# Morning Routine",
		"`test-123`",
		"| 1 | Folder | `/home/me/projects` | 0s |",
		"| 2 | File | `/home/me/todo.txt` | 1.5s |",
		"**Total delay:** 1.5s",
	} {
		assert.Contains(t, out, want)
	}
}

func TestExportMarkdownNoActions(t *testing.T) {
	e, err := NewExporter(Options{Format: FormatMarkdown})
	require.NoError(t, err)

	out, err := e.Render(workflows.New("Empty"))
	require.NoError(t, err)
	assert.Contains(t, out, "_No actions._")
	assert.NotContains(t, out, "| # |")
}

func TestExportYAMLAndJSONReimport(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			e, err := NewExporter(Options{Format: format})
			require.NoError(t, err)

			out, err := e.Render(testWorkflow())
			require.NoError(t, err)

			back, err := workflows.UnmarshalWorkflow([]byte(out))
			require.NoError(t, err)
			assert.Equal(t, testWorkflow(), back)
		})
	}
}

func TestExportWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "morning.md")
	e, err := NewExporter(Options{Format: FormatMarkdown, Out: out})
	require.NoError(t, err)

	rendered, err := e.Export(testWorkflow())
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, rendered, string(data))
}

func TestExportCustomTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("{{.Name}}:{{range .Actions}} {{.path}}{{end}}"), 0644))

	e, err := NewExporter(Options{Format: FormatMarkdown, CustomTemplate: tmplPath})
	require.NoError(t, err)

	out, err := e.Render(testWorkflow())
	require.NoError(t, err)
	assert.Equal(t, "Morning Routine: /home/me/projects /home/me/todo.txt", strings.TrimSpace(out))
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "morning-routine.yaml", DefaultFileName(testWorkflow(), FormatYAML))
	assert.Equal(t, "workflow.md", DefaultFileName(workflows.New("???"), FormatMarkdown))
}
