package workflows

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// UnmarshalWorkflow decodes a single workflow from JSON or YAML bytes.
// Input starting with '{' is read as JSON, anything else as YAML.
// A missing ID is minted and the result is validated.
func UnmarshalWorkflow(data []byte) (*Workflow, error) {
	var wf Workflow
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &wf); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workflow: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &wf); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workflow: %w", err)
		}
		if wf.ID == "" {
			wf.ID = NewID()
		}
		if wf.Actions == nil {
			wf.Actions = []Action{}
		}
	}

	if err := wf.Validate(); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w", err)
	}

	return &wf, nil
}

// MarshalWorkflow marshals a workflow to YAML bytes
func MarshalWorkflow(wf *Workflow) ([]byte, error) {
	data, err := yaml.Marshal(wf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workflow: %w", err)
	}
	return data, nil
}

// LoadFile reads and unmarshals a workflow from a JSON or YAML file.
func LoadFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalWorkflow(data)
}

// LoadReader unmarshals a workflow from an io.Reader, e.g. stdin.
func LoadReader(r io.Reader) (*Workflow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalWorkflow(data)
}
