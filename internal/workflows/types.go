package workflows

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
)

// Kind tells the launcher what an action's path refers to.
type Kind string

const (
	// KindFolder opens a directory.
	KindFolder Kind = "folder"
	// KindFile launches a file with its default handler.
	KindFile Kind = "file"
)

// ParseKind converts user input ("folder", "File", " dir ") into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "folder", "dir", "directory":
		return KindFolder, nil
	case "file":
		return KindFile, nil
	}
	return "", fmt.Errorf("unknown action kind %q (want folder or file): %w", s, sceneerrors.ErrInvalid)
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindFolder || k == KindFile
}

func (k Kind) String() string { return string(k) }

// Label returns the display form of the kind, e.g. "Folder".
func (k Kind) Label() string {
	return cases.Title(language.English).String(string(k))
}

// Action is one step of a workflow.
type Action struct {
	Kind  Kind    `json:"kind" yaml:"kind"`
	Path  string  `json:"path" yaml:"path"`
	Delay float64 `json:"delay" yaml:"delay"` // Seconds to wait before opening
}

// Validate checks the kind and that the delay is a finite, non-negative number.
// The path is not checked; a missing file only fails when the action runs.
func (a Action) Validate() error {
	if !a.Kind.Valid() {
		return fmt.Errorf("unknown action kind %q: %w", a.Kind, sceneerrors.ErrInvalid)
	}
	if math.IsNaN(a.Delay) || math.IsInf(a.Delay, 0) || a.Delay < 0 {
		return fmt.Errorf("delay must be a non-negative number of seconds, got %v: %w", a.Delay, sceneerrors.ErrInvalid)
	}
	return nil
}

// maxWait is the longest delay a time.Duration can hold, about 292 years.
const maxWait = time.Duration(math.MaxInt64)

// Wait returns the delay as a time.Duration. Delays too long for a
// Duration saturate at maxWait.
func (a Action) Wait() time.Duration {
	if a.Delay <= 0 {
		return 0
	}
	d := a.Delay * float64(time.Second)
	if d >= float64(maxWait) {
		return maxWait
	}
	return time.Duration(d)
}

// actionDocument mirrors Action on the wire and also accepts the legacy
// "type" key used before actions carried a "kind".
type actionDocument struct {
	Kind  Kind    `json:"kind" yaml:"kind"`
	Type  Kind    `json:"type,omitempty" yaml:"type,omitempty"`
	Path  string  `json:"path" yaml:"path"`
	Delay float64 `json:"delay" yaml:"delay"`
}

func (d actionDocument) action() Action {
	kind := d.Kind
	if kind == "" {
		kind = d.Type
	}
	return Action{Kind: kind, Path: d.Path, Delay: d.Delay}
}

// UnmarshalJSON implements custom JSON unmarshaling for Action.
func (a *Action) UnmarshalJSON(data []byte) error {
	var doc actionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*a = doc.action()
	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for Action.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var doc actionDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*a = doc.action()
	return nil
}

// Workflow is a named, ordered sequence of actions.
type Workflow struct {
	ID      string   `json:"id" yaml:"id,omitempty"` // Assigned once by New, never changed
	Name    string   `json:"name" yaml:"name"`       // Unique within a store
	Actions []Action `json:"actions" yaml:"actions"`
}

// NewID returns a fresh workflow identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates an empty workflow with a freshly minted ID.
func New(name string) *Workflow {
	return &Workflow{
		ID:      NewID(),
		Name:    name,
		Actions: []Action{},
	}
}

// AddAction appends an action to the end of the workflow.
func (w *Workflow) AddAction(kind Kind, path string, delay float64) error {
	a := Action{Kind: kind, Path: path, Delay: delay}
	if err := a.Validate(); err != nil {
		return err
	}
	w.Actions = append(w.Actions, a)
	return nil
}

// RemoveAction removes the action at index. An out-of-range index is ignored;
// the return value reports whether anything was removed.
func (w *Workflow) RemoveAction(index int) bool {
	if index < 0 || index >= len(w.Actions) {
		return false
	}
	w.Actions = append(w.Actions[:index], w.Actions[index+1:]...)
	return true
}

// MoveAction removes the action at from and reinserts it at to.
func (w *Workflow) MoveAction(from, to int) error {
	n := len(w.Actions)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d out of range for %d action(s): %w", from, to, n, sceneerrors.ErrInvalid)
	}
	if from == to {
		return nil
	}
	a := w.Actions[from]
	w.Actions = append(w.Actions[:from], w.Actions[from+1:]...)
	w.Actions = append(w.Actions[:to], append([]Action{a}, w.Actions[to:]...)...)
	return nil
}

// SetDelay changes the delay of the action at index.
func (w *Workflow) SetDelay(index int, delay float64) error {
	if index < 0 || index >= len(w.Actions) {
		return fmt.Errorf("action %d out of range for %d action(s): %w", index, len(w.Actions), sceneerrors.ErrInvalid)
	}
	a := w.Actions[index]
	a.Delay = delay
	if err := a.Validate(); err != nil {
		return err
	}
	w.Actions[index] = a
	return nil
}

// TotalDelay is the sum of all action delays, saturating at maxWait.
func (w *Workflow) TotalDelay() time.Duration {
	var total time.Duration
	for _, a := range w.Actions {
		wait := a.Wait()
		if total > maxWait-wait {
			return maxWait
		}
		total += wait
	}
	return total
}

// Clone returns a deep copy of the workflow, ID included.
func (w *Workflow) Clone() *Workflow {
	if w == nil {
		return nil
	}
	c := &Workflow{
		ID:      w.ID,
		Name:    w.Name,
		Actions: make([]Action, len(w.Actions)),
	}
	copy(c.Actions, w.Actions)
	return c
}

// Validate validates the workflow structure and content.
func (w *Workflow) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("workflow name is required: %w", sceneerrors.ErrInvalid)
	}
	for i, a := range w.Actions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("action %d: %w", i+1, err)
		}
	}
	return nil
}

// workflowDocument keeps encoding/json from recursing into Workflow's methods.
type workflowDocument Workflow

// MarshalJSON writes an empty action list as [] rather than null.
func (w Workflow) MarshalJSON() ([]byte, error) {
	doc := workflowDocument(w)
	if doc.Actions == nil {
		doc.Actions = []Action{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON mints an ID for documents written before workflows had one.
func (w *Workflow) UnmarshalJSON(data []byte) error {
	var doc workflowDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = NewID()
	}
	if doc.Actions == nil {
		doc.Actions = []Action{}
	}
	*w = Workflow(doc)
	return nil
}
