// Package tui provides Bubble Tea models for scene.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/workflows"
)

// nameSource exposes workflow names to fuzzy matching.
type nameSource []*workflows.Workflow

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// PickerModel lets the user choose one workflow, narrowing the list by
// typing part of its name.
type PickerModel struct {
	title     string
	all       []*workflows.Workflow
	results   []*workflows.Workflow
	filter    textinput.Model
	selected  int
	offset    int
	rows      int
	width     int
	quit      bool
	confirmed bool

	titleStyle    lipgloss.Style
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	dimStyle      lipgloss.Style
}

// NewPicker creates a picker over wfs. rows is the number of list rows shown.
func NewPicker(title string, wfs []*workflows.Workflow, rows int) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter workflows..."
	ti.Prompt = "/ "
	ti.Focus()

	if rows < 1 {
		rows = 10
	}

	return PickerModel{
		title:   title,
		all:     wfs,
		results: wfs,
		filter:  ti,
		rows:    rows,
		width:   80,

		titleStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("59")).Padding(0, 1),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit

		case "enter":
			if len(m.results) > 0 {
				m.confirmed = true
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p", "ctrl+k":
			if m.selected > 0 {
				m.selected--
				m.updateScrollOffset()
			}
			return m, nil

		case "down", "ctrl+n", "ctrl+j":
			if m.selected < len(m.results)-1 {
				m.selected++
				m.updateScrollOffset()
			}
			return m, nil

		case "pgup":
			m.selected = max(m.selected-m.rows, 0)
			m.updateScrollOffset()
			return m, nil

		case "pgdown":
			m.selected = max(min(m.selected+m.rows, len(m.results)-1), 0)
			m.updateScrollOffset()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if after := m.filter.Value(); after != before {
		m.applyFilter(after)
	}
	return m, cmd
}

// applyFilter keeps workflows whose name fuzzily matches query, best
// match first.
func (m *PickerModel) applyFilter(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		m.results = m.all
	} else {
		matches := fuzzy.FindFrom(query, nameSource(m.all))
		m.results = make([]*workflows.Workflow, 0, len(matches))
		for _, match := range matches {
			m.results = append(m.results, m.all[match.Index])
		}
	}
	m.selected = 0
	m.offset = 0
}

// updateScrollOffset keeps the selected item visible.
func (m *PickerModel) updateScrollOffset() {
	if m.selected < m.offset {
		m.offset = m.selected
	} else if m.selected >= m.offset+m.rows {
		m.offset = m.selected - m.rows + 1
	}
}

// View implements tea.Model.
func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("  ")
	b.WriteString(m.dimStyle.Render(fmt.Sprintf("%d/%d", len(m.results), len(m.all))))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(m.dimStyle.Render("No workflows match."))
		b.WriteString("\n")
	}

	end := min(m.offset+m.rows, len(m.results))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderItem(m.results[i], i == m.selected))
		b.WriteString("\n")
	}

	if wf := m.Selected(); wf != nil {
		b.WriteString("\n")
		b.WriteString(m.dimStyle.Render(summary(wf)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.dimStyle.Render("↑/↓: move • enter: select • esc: cancel"))
	return b.String()
}

func (m PickerModel) renderItem(wf *workflows.Workflow, selected bool) string {
	name := wf.Name
	if limit := m.width - 16; limit > 0 && lipgloss.Width(name) > limit {
		name = lipgloss.NewStyle().MaxWidth(limit).Render(name) + "…"
	}

	count := fmt.Sprintf("%d action(s)", len(wf.Actions))
	if selected {
		return m.selectedStyle.Render(name + "  " + count)
	}
	return m.normalStyle.Render("  " + name + "  " + count)
}

// summary lists the first few actions of wf on one line.
func summary(wf *workflows.Workflow) string {
	if len(wf.Actions) == 0 {
		return "(no actions)"
	}

	const shown = 3
	parts := make([]string, 0, shown+1)
	for i, a := range wf.Actions {
		if i == shown {
			parts = append(parts, fmt.Sprintf("+%d more", len(wf.Actions)-shown))
			break
		}
		parts = append(parts, a.Kind.Label()+" "+a.Path)
	}
	return strings.Join(parts, " → ")
}

// DidQuit returns true if the user quit without selecting.
func (m PickerModel) DidQuit() bool {
	return m.quit
}

// DidConfirm returns true if the user confirmed a selection.
func (m PickerModel) DidConfirm() bool {
	return m.confirmed
}

// Selected returns the highlighted workflow, or nil when nothing matches.
func (m PickerModel) Selected() *workflows.Workflow {
	if m.selected < 0 || m.selected >= len(m.results) {
		return nil
	}
	return m.results[m.selected]
}

// PickWorkflow runs the picker and returns the chosen workflow.
// Quitting returns ErrCanceled.
func PickWorkflow(title string, wfs []*workflows.Workflow, rows int) (*workflows.Workflow, error) {
	if len(wfs) == 0 {
		return nil, fmt.Errorf("no workflows to choose from: %w", sceneerrors.ErrNotFound)
	}

	result, err := tea.NewProgram(NewPicker(title, wfs, rows)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}

	final, ok := result.(PickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type")
	}
	if !final.DidConfirm() {
		return nil, sceneerrors.ErrCanceled
	}
	return final.Selected(), nil
}
