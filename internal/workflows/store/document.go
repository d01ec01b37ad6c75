package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/chazuruo/scene/internal/workflows"
)

// documentIndent matches the four-space indentation of existing store files.
const documentIndent = "    "

// decodeResult is a decoded backing store plus notes about any migration
// that happened along the way.
type decodeResult struct {
	workflows map[string]*workflows.Workflow
	notes     []string
	migrated  bool // At least one entry was not in the current id-keyed shape
}

// decodeDocument parses a backing store document. Three shapes are accepted:
//
//	{"<id>":   {"id": ..., "name": ..., "actions": [...]}}   current
//	{"<name>": {"name": ..., "actions": [...]}}              name-keyed, no ids
//	{"<name>": [{"type": ..., "path": ..., "delay": ...}]}   original scene list
//
// Missing ids are minted. Colliding ids are re-minted and colliding names
// get a numeric suffix so the loaded collection always satisfies the
// uniqueness invariants.
func decodeDocument(data []byte) (decodeResult, error) {
	res := decodeResult{workflows: make(map[string]*workflows.Workflow)}

	if len(bytes.TrimSpace(data)) == 0 {
		return res, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return decodeResult{}, fmt.Errorf("parse document: %w", err)
	}

	// Decode in key order so suffixes are deterministic.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]bool, len(raw))
	for _, key := range keys {
		if bytes.Equal(bytes.TrimSpace(raw[key]), []byte("null")) {
			res.notes = append(res.notes, fmt.Sprintf("workflow %q has no content; skipped", key))
			res.migrated = true
			continue
		}

		wf, legacy, err := decodeEntry(key, raw[key])
		if err != nil {
			return decodeResult{}, fmt.Errorf("entry %q: %w", key, err)
		}
		if legacy {
			res.migrated = true
		}

		if _, dup := res.workflows[wf.ID]; dup {
			old := wf.ID
			wf.ID = workflows.NewID()
			res.notes = append(res.notes, fmt.Sprintf("workflow %q reused id %s; assigned %s", wf.Name, old, wf.ID))
			res.migrated = true
		}

		if names[wf.Name] {
			renamed := dedupeName(wf.Name, func(s string) bool { return names[s] })
			res.notes = append(res.notes, fmt.Sprintf("duplicate workflow name %q renamed to %q", wf.Name, renamed))
			wf.Name = renamed
			res.migrated = true
		}

		names[wf.Name] = true
		res.workflows[wf.ID] = wf
	}

	return res, nil
}

// decodeEntry decodes one top-level value. legacy reports whether the entry
// needed an id minted or its name taken from the key.
func decodeEntry(key string, msg json.RawMessage) (*workflows.Workflow, bool, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var actions []workflows.Action
		if err := json.Unmarshal(trimmed, &actions); err != nil {
			return nil, false, err
		}
		if actions == nil {
			actions = []workflows.Action{}
		}
		wf := &workflows.Workflow{ID: workflows.NewID(), Name: key, Actions: actions}
		return wf, true, wf.Validate()
	}

	var head struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return nil, false, err
	}

	var wf workflows.Workflow
	if err := json.Unmarshal(trimmed, &wf); err != nil {
		return nil, false, err
	}

	legacy := head.ID == ""
	if head.Name == "" {
		wf.Name = key
		legacy = true
	}
	return &wf, legacy, wf.Validate()
}

// encodeDocument renders the collection as an id-keyed, indented JSON document.
// HTML escaping is off so paths containing '&' or '<' stay readable.
func encodeDocument(wfs map[string]*workflows.Workflow) ([]byte, error) {
	if wfs == nil {
		wfs = map[string]*workflows.Workflow{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", documentIndent)
	if err := enc.Encode(wfs); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
