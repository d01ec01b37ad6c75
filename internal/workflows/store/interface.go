package store

import (
	"github.com/chazuruo/scene/internal/workflows"
)

// Store defines the workflow collection operations the presentation layer uses.
// Manager is the only implementation; CLI commands hold a Store.
type Store interface {
	// Load replaces the in-memory collection with the backing store's contents.
	Load() error

	// Save rewrites the backing store from the in-memory collection.
	Save() error

	// IsNameDuplicate reports whether a workflow other than excludeID uses name.
	IsNameDuplicate(name, excludeID string) bool

	// Add inserts a new workflow and saves.
	Add(wf *workflows.Workflow) error

	// Update replaces the stored workflow with the same ID and saves.
	Update(wf *workflows.Workflow) error

	// Remove deletes a workflow by ID and saves. It returns false if the ID is unknown.
	Remove(id string) bool

	// Get returns a copy of the workflow with the given ID.
	Get(id string) (*workflows.Workflow, bool)

	// Copy duplicates a workflow under a new name and a fresh ID.
	Copy(sourceID, newName string) (*workflows.Workflow, error)

	// List returns copies of all workflows ordered by name.
	List() []*workflows.Workflow

	// Resolve finds a workflow by ID, exact name, or unique ID prefix.
	Resolve(ref string) (*workflows.Workflow, error)

	// SuggestCopyName returns an unused name derived from base.
	SuggestCopyName(base string) string
}

var _ Store = (*Manager)(nil)
