// Package store owns the workflow collection and its JSON backing store.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
	"github.com/chazuruo/scene/internal/workflows"
)

// minPrefixLen is the shortest ID prefix Resolve accepts.
const minPrefixLen = 4

// Manager keeps every workflow in memory keyed by ID and rewrites the whole
// backing store after each successful mutation. It is the only writer of
// the file at path.
type Manager struct {
	path string

	mu        sync.RWMutex
	workflows map[string]*workflows.Workflow

	// loadFailed is set when the file existed but could not be read. The
	// next save moves it aside instead of overwriting it.
	loadFailed bool
}

// New creates a Manager for the store file at path. The collection starts
// empty; call Load to read the file.
func New(path string) *Manager {
	return &Manager{
		path:      path,
		workflows: make(map[string]*workflows.Workflow),
	}
}

// Open creates a Manager and loads it. The Manager is usable even when the
// returned error is non-nil; its collection is then empty.
func Open(path string) (*Manager, error) {
	m := New(path)
	return m, m.Load()
}

// Path returns the backing store path.
func (m *Manager) Path() string {
	return m.path
}

// Len returns the number of workflows.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workflows)
}

// Load replaces the collection with the backing store's contents.
// A missing file yields an empty collection and no error. Any read or
// parse failure is logged, leaves the collection empty, and is returned as
// a *errors.PersistenceError.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workflows = make(map[string]*workflows.Workflow)
	m.loadFailed = false

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(log.CatStore, "no store file yet", "path", m.path)
		return nil
	}
	if err != nil {
		return m.loadError(err)
	}

	res, err := decodeDocument(data)
	if err != nil {
		return m.loadError(err)
	}

	for _, note := range res.notes {
		log.Warn(log.CatStore, note, "path", m.path)
	}
	if res.migrated {
		log.Info(log.CatStore, "upgraded legacy store document", "path", m.path, "workflows", len(res.workflows))
	}

	m.workflows = res.workflows
	log.Debug(log.CatStore, "loaded workflows", "path", m.path, "count", len(m.workflows))
	return nil
}

func (m *Manager) loadError(err error) error {
	m.loadFailed = true
	perr := &sceneerrors.PersistenceError{Op: "load", Path: m.path, Err: err}
	log.ErrorErr(log.CatStore, "failed to load workflows; starting empty", err, "path", m.path)
	return perr
}

// Save rewrites the backing store from the current collection. The
// document is written to a temporary file and renamed into place.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	data, err := encodeDocument(m.workflows)
	if err != nil {
		return m.saveError(err)
	}

	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return m.saveError(err)
		}
	}

	if m.loadFailed {
		if err := m.backupLocked(); err != nil {
			return m.saveError(err)
		}
		m.loadFailed = false
	}

	tempPath := m.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return m.saveError(err)
	}
	if err := os.Rename(tempPath, m.path); err != nil {
		_ = os.Remove(tempPath)
		return m.saveError(err)
	}

	log.Debug(log.CatStore, "saved workflows", "path", m.path, "count", len(m.workflows))
	return nil
}

// backupLocked moves an unreadable store file aside before it is replaced.
// Anything other than a regular file is left alone and blocks the save.
func (m *Manager) backupLocked() error {
	info, err := os.Stat(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("keep unreadable store: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("store path is a %s, not a regular file; refusing to replace it", kindOf(info))
	}

	backup := m.path + ".bak"
	if err := os.Rename(m.path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("keep unreadable store: %w", err)
	}
	log.Warn(log.CatStore, "kept unreadable store file", "backup", backup)
	return nil
}

func kindOf(info fs.FileInfo) string {
	if info.IsDir() {
		return "directory"
	}
	return "special file"
}

func (m *Manager) saveError(err error) error {
	log.ErrorErr(log.CatStore, "failed to save workflows", err, "path", m.path)
	return &sceneerrors.PersistenceError{Op: "save", Path: m.path, Err: err}
}

// persistLocked saves after a mutation. The mutation stands even if the
// write fails; saveLocked has already logged the failure.
func (m *Manager) persistLocked() {
	_ = m.saveLocked()
}

// IsNameDuplicate reports whether a workflow other than excludeID is named
// exactly name. Pass an empty excludeID to check against every workflow.
func (m *Manager) IsNameDuplicate(name, excludeID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isNameDuplicateLocked(name, excludeID)
}

func (m *Manager) isNameDuplicateLocked(name, excludeID string) bool {
	for id, wf := range m.workflows {
		if id != excludeID && wf.Name == name {
			return true
		}
	}
	return false
}

// Add stores a copy of wf under its pre-assigned ID and saves.
// It fails with ErrDuplicateName when another workflow has the same name;
// the collection is unchanged on any failure.
func (m *Manager) Add(wf *workflows.Workflow) error {
	if err := checkWorkflow("add", wf); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isNameDuplicateLocked(wf.Name, "") {
		return &sceneerrors.WorkflowError{Op: "add", Err: sceneerrors.ErrDuplicateName, ID: wf.Name}
	}
	if _, exists := m.workflows[wf.ID]; exists {
		return &sceneerrors.WorkflowError{Op: "add", Err: sceneerrors.ErrAlreadyExists, ID: wf.ID}
	}

	m.workflows[wf.ID] = wf.Clone()
	m.persistLocked()
	return nil
}

// Update replaces the stored workflow that has wf's ID and saves.
// It fails with ErrNotFound for an unknown ID and with ErrDuplicateName
// when a different workflow already uses wf's name; the stored entry is
// unchanged on failure.
func (m *Manager) Update(wf *workflows.Workflow) error {
	if err := checkWorkflow("update", wf); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workflows[wf.ID]; !ok {
		return &sceneerrors.WorkflowError{Op: "update", Err: sceneerrors.ErrNotFound, ID: wf.ID}
	}
	if m.isNameDuplicateLocked(wf.Name, wf.ID) {
		return &sceneerrors.WorkflowError{Op: "update", Err: sceneerrors.ErrDuplicateName, ID: wf.Name}
	}

	m.workflows[wf.ID] = wf.Clone()
	m.persistLocked()
	return nil
}

// Remove deletes the workflow with the given ID and saves.
// It returns false, without saving, when the ID is unknown.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workflows[id]; !ok {
		return false
	}
	delete(m.workflows, id)
	m.persistLocked()
	return true
}

// Get returns a copy of the workflow with the given ID. Changes to the copy
// take effect only through Update.
func (m *Manager) Get(id string) (*workflows.Workflow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wf, ok := m.workflows[id]
	if !ok {
		return nil, false
	}
	return wf.Clone(), true
}

// FindByName returns a copy of the workflow named exactly name.
func (m *Manager) FindByName(name string) (*workflows.Workflow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, wf := range m.workflows {
		if wf.Name == name {
			return wf.Clone(), true
		}
	}
	return nil, false
}

// Copy creates a workflow named newName with a fresh ID and a deep copy of
// the source's actions in the same order, stores it and saves.
func (m *Manager) Copy(sourceID, newName string) (*workflows.Workflow, error) {
	if strings.TrimSpace(newName) == "" {
		return nil, &sceneerrors.WorkflowError{Op: "copy", Err: fmt.Errorf("workflow name is required: %w", sceneerrors.ErrInvalid)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.workflows[sourceID]
	if !ok {
		return nil, &sceneerrors.WorkflowError{Op: "copy", Err: sceneerrors.ErrNotFound, ID: sourceID}
	}
	if m.isNameDuplicateLocked(newName, "") {
		return nil, &sceneerrors.WorkflowError{Op: "copy", Err: sceneerrors.ErrDuplicateName, ID: newName}
	}

	dup := src.Clone()
	dup.ID = workflows.NewID()
	dup.Name = newName

	m.workflows[dup.ID] = dup
	m.persistLocked()
	return dup.Clone(), nil
}

// List returns copies of all workflows sorted by name, then ID.
func (m *Manager) List() []*workflows.Workflow {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*workflows.Workflow, 0, len(m.workflows))
	for _, wf := range m.workflows {
		out = append(out, wf.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Resolve finds a workflow by exact ID, then exact name, then a unique ID
// prefix of at least four characters.
func (m *Manager) Resolve(ref string) (*workflows.Workflow, error) {
	if wf, ok := m.Get(ref); ok {
		return wf, nil
	}
	if wf, ok := m.FindByName(ref); ok {
		return wf, nil
	}

	if len(ref) >= minPrefixLen {
		m.mu.RLock()
		var matches []*workflows.Workflow
		for id, wf := range m.workflows {
			if strings.HasPrefix(id, ref) {
				matches = append(matches, wf)
			}
		}
		m.mu.RUnlock()

		switch len(matches) {
		case 1:
			return matches[0].Clone(), nil
		case 0:
		default:
			return nil, &sceneerrors.WorkflowError{
				Op:  "resolve",
				Err: fmt.Errorf("id prefix matches %d workflows: %w", len(matches), sceneerrors.ErrInvalid),
				ID:  ref,
			}
		}
	}

	return nil, &sceneerrors.WorkflowError{Op: "resolve", Err: sceneerrors.ErrNotFound, ID: ref}
}

// SuggestCopyName returns "<base> (copy)", or the first free "<base> (copy N)".
func (m *Manager) SuggestCopyName(base string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyName(base, func(s string) bool { return m.isNameDuplicateLocked(s, "") })
}

// checkWorkflow rejects workflows that can never be stored.
func checkWorkflow(op string, wf *workflows.Workflow) error {
	if wf == nil {
		return &sceneerrors.WorkflowError{Op: op, Err: fmt.Errorf("nil workflow: %w", sceneerrors.ErrInvalid)}
	}
	if wf.ID == "" {
		return &sceneerrors.WorkflowError{Op: op, Err: fmt.Errorf("workflow must have an ID: %w", sceneerrors.ErrInvalid), ID: wf.Name}
	}
	if err := wf.Validate(); err != nil {
		return &sceneerrors.WorkflowError{Op: op, Err: err, ID: wf.ID}
	}
	return nil
}
