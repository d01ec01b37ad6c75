package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/scene/internal/workflows"
)

// delayStep is how much +/- change an action's delay, in seconds.
const delayStep = 0.5

// RevealFunc opens the folder that holds path.
type RevealFunc func(path string) error

// revealDoneMsg reports the outcome of a reveal started from the editor.
type revealDoneMsg struct {
	path string
	err  error
}

// EditorModel edits the action list of one workflow: reorder, delete and
// adjust delays. It works on a copy; the caller persists the result.
type EditorModel struct {
	workflow *workflows.Workflow
	cursor   int
	dirty    bool
	saved    bool
	quit     bool
	status   string
	reveal   RevealFunc

	titleStyle    lipgloss.Style
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	dimStyle      lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewEditor creates an editor over a copy of wf. reveal may be nil.
func NewEditor(wf *workflows.Workflow, reveal RevealFunc) EditorModel {
	return EditorModel{
		workflow: wf.Clone(),
		reveal:   reveal,

		titleStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case revealDoneMsg:
		if msg.err != nil {
			m.status = "reveal failed: " + msg.err.Error()
		} else {
			m.status = "revealed " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.workflow.Actions)
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "esc", "q":
		m.quit = true
		return m, tea.Quit

	case "ctrl+s", "w":
		m.saved = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}

	case "shift+up", "K":
		if m.cursor > 0 {
			m.move(m.cursor - 1)
		}

	case "shift+down", "J":
		if m.cursor < n-1 {
			m.move(m.cursor + 1)
		}

	case "d", "delete", "backspace":
		if m.workflow.RemoveAction(m.cursor) {
			m.dirty = true
			if m.cursor >= len(m.workflow.Actions) && m.cursor > 0 {
				m.cursor--
			}
		}

	case "+", "=":
		m.adjustDelay(delayStep)

	case "-", "_":
		m.adjustDelay(-delayStep)

	case "0":
		if n > 0 && m.workflow.Actions[m.cursor].Delay != 0 {
			_ = m.workflow.SetDelay(m.cursor, 0)
			m.dirty = true
		}

	case "o", "enter":
		if n > 0 && m.reveal != nil {
			return m, revealCmd(m.reveal, m.workflow.Actions[m.cursor].Path)
		}
	}

	return m, nil
}

func (m *EditorModel) move(to int) {
	if err := m.workflow.MoveAction(m.cursor, to); err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = to
	m.dirty = true
}

func (m *EditorModel) adjustDelay(delta float64) {
	if len(m.workflow.Actions) == 0 {
		return
	}
	current := m.workflow.Actions[m.cursor].Delay
	next := math.Max(0, math.Round((current+delta)*10)/10)
	if next == current {
		return
	}
	if err := m.workflow.SetDelay(m.cursor, next); err != nil {
		m.status = err.Error()
		return
	}
	m.dirty = true
}

func revealCmd(reveal RevealFunc, path string) tea.Cmd {
	return func() tea.Msg {
		return revealDoneMsg{path: path, err: reveal(path)}
	}
}

// View implements tea.Model.
func (m EditorModel) View() string {
	var b strings.Builder

	title := m.workflow.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString(m.titleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.workflow.Actions) == 0 {
		b.WriteString(m.dimStyle.Render("  No actions."))
		b.WriteString("\n")
	}

	for i, a := range m.workflow.Actions {
		line := fmt.Sprintf("%2d. %-6s %-6s %s", i+1, a.Kind.Label(), a.Wait(), a.Path)
		if i == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + line))
		} else {
			b.WriteString(m.normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.dimStyle.Render("j/k: move • J/K: reorder • +/-: delay • d: delete • o: reveal • w: save • q: quit"))
	return b.String()
}

// Workflow returns the edited copy.
func (m EditorModel) Workflow() *workflows.Workflow {
	return m.workflow
}

// Dirty reports whether any action changed.
func (m EditorModel) Dirty() bool {
	return m.dirty
}

// DidSave returns true if the user asked to keep the changes.
func (m EditorModel) DidSave() bool {
	return m.saved
}

// DidQuit returns true if the user left without saving.
func (m EditorModel) DidQuit() bool {
	return m.quit
}

// EditActions runs the editor. It returns the edited workflow and true when
// the user saved changes, or the original and false otherwise.
func EditActions(wf *workflows.Workflow, reveal RevealFunc) (*workflows.Workflow, bool, error) {
	result, err := tea.NewProgram(NewEditor(wf, reveal)).Run()
	if err != nil {
		return wf, false, fmt.Errorf("failed to run TUI: %w", err)
	}

	final, ok := result.(EditorModel)
	if !ok {
		return wf, false, fmt.Errorf("unexpected final model type")
	}
	if !final.DidSave() || !final.Dirty() {
		return wf, false, nil
	}
	return final.Workflow(), true, nil
}
