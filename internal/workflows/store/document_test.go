package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/scene/internal/testutil"
	"github.com/chazuruo/scene/internal/workflows"
)

func TestLoad_CurrentDocument(t *testing.T) {
	path := testutil.WriteStore(t, `{
    "id-1": {
        "id": "id-1",
        "name": "Morning",
        "actions": [
            {"kind": "folder", "path": "/a", "delay": 0},
            {"kind": "file", "path": "/b", "delay": 1.5}
        ]
    }
}`)

	m, err := Open(path)
	require.NoError(t, err)

	wf, ok := m.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, "Morning", wf.Name)
	assert.Equal(t, []workflows.Action{folder("/a", 0), file("/b", 1.5)}, wf.Actions)
}

func TestLoad_NameKeyedLegacyDocument(t *testing.T) {
	path := testutil.WriteStore(t, `{
    "Work": {"name": "Work", "actions": [{"type": "folder", "path": "D:\\projects", "delay": 0.0}]},
    "Play": {"name": "Play", "actions": []}
}`)

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	work, ok := m.FindByName("Work")
	require.True(t, ok)
	assert.NotEmpty(t, work.ID)
	assert.NotEqual(t, "Work", work.ID)
	assert.Equal(t, []workflows.Action{folder(`D:\projects`, 0)}, work.Actions)

	// Minted ids are stable for the rest of the session.
	again, ok := m.Get(work.ID)
	require.True(t, ok)
	assert.Equal(t, work, again)

	// Saving upgrades the file to the id-keyed shape.
	require.NoError(t, m.Save())
	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(testutil.ReadFile(t, path)), &doc))
	require.Contains(t, doc, work.ID)
	assert.Equal(t, work.ID, doc[work.ID]["id"])
	assert.Equal(t, "Work", doc[work.ID]["name"])
	actions := doc[work.ID]["actions"].([]any)
	assert.Equal(t, "folder", actions[0].(map[string]any)["kind"])
}

func TestLoad_SceneListLegacyDocument(t *testing.T) {
	path := testutil.WriteStore(t, `{
    "Start day": [
        {"type": "folder", "path": "/home/me", "delay": 0},
        {"type": "file", "path": "/home/me/todo.txt", "delay": 2}
    ]
}`)

	m, err := Open(path)
	require.NoError(t, err)

	wf, ok := m.FindByName("Start day")
	require.True(t, ok)
	assert.NotEmpty(t, wf.ID)
	assert.Equal(t, []workflows.Action{folder("/home/me", 0), file("/home/me/todo.txt", 2)}, wf.Actions)
}

func TestLoad_EntryWithoutNameTakesKey(t *testing.T) {
	path := testutil.WriteStore(t, `{"Nameless": {"actions": []}}`)

	m, err := Open(path)
	require.NoError(t, err)

	_, ok := m.FindByName("Nameless")
	assert.True(t, ok)
}

func TestLoad_DuplicateNamesAreDisambiguated(t *testing.T) {
	path := testutil.WriteStore(t, `{
    "a": {"id": "a", "name": "Same", "actions": []},
    "b": {"id": "b", "name": "Same", "actions": []},
    "c": {"id": "c", "name": "Same", "actions": []}
}`)

	m, err := Open(path)
	require.NoError(t, err)

	var names []string
	for _, wf := range m.List() {
		names = append(names, wf.Name)
	}
	assert.Equal(t, []string{"Same", "Same (2)", "Same (3)"}, names)

	a, _ := m.Get("a")
	assert.Equal(t, "Same", a.Name)
}

func TestLoad_DuplicateIDsAreReminted(t *testing.T) {
	path := testutil.WriteStore(t, `{
    "k1": {"id": "same", "name": "One", "actions": []},
    "k2": {"id": "same", "name": "Two", "actions": []}
}`)

	m, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	one, _ := m.FindByName("One")
	two, _ := m.FindByName("Two")
	assert.NotEqual(t, one.ID, two.ID)
}

func TestLoad_NullEntryIsSkipped(t *testing.T) {
	data := []byte(`{
    "Ghost": null,
    "id-1": {"id": "id-1", "name": "Morning", "actions": []}
}`)

	res, err := decodeDocument(data)
	require.NoError(t, err)
	require.Len(t, res.workflows, 1)
	assert.Equal(t, "Morning", res.workflows["id-1"].Name)
	assert.True(t, res.migrated)
	require.Len(t, res.notes, 1)
	assert.Contains(t, res.notes[0], `"Ghost"`)

	path := testutil.WriteStore(t, string(data))
	m, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
	_, ok := m.FindByName("Ghost")
	assert.False(t, ok)
}

func TestLoad_InvalidEntryFailsWholeDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative delay", `{"x": {"id": "x", "name": "X", "actions": [{"kind": "file", "path": "/a", "delay": -1}]}}`},
		{"unknown kind", `{"x": [{"type": "url", "path": "/a", "delay": 0}]}`},
		{"wrong shape", `{"x": "just a string"}`},
		{"top-level array", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(testutil.WriteStore(t, tt.content))
			assert.Error(t, m.Load())
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestLoad_EmptyFileIsEmptyCollection(t *testing.T) {
	m := New(testutil.WriteStore(t, "  \n"))
	require.NoError(t, m.Load())
	assert.Equal(t, 0, m.Len())
}

func TestEncodeDocument(t *testing.T) {
	data, err := encodeDocument(map[string]*workflows.Workflow{
		"id-1": {ID: "id-1", Name: "A & B", Actions: nil},
	})
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n    \"id-1\": {")
	assert.Contains(t, string(data), `"name": "A & B"`)
	assert.Contains(t, string(data), `"actions": []`)

	empty, err := encodeDocument(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(empty))
}

func TestCopyName(t *testing.T) {
	taken := map[string]bool{"X (copy)": true}
	isTaken := func(s string) bool { return taken[s] }

	assert.Equal(t, "Y (copy)", copyName("Y", isTaken))
	assert.Equal(t, "X (copy 2)", copyName("X", isTaken))
}

func TestDedupeName(t *testing.T) {
	taken := map[string]bool{"N": true, "N (2)": true}
	assert.Equal(t, "N (3)", dedupeName("N", func(s string) bool { return taken[s] }))
	assert.Equal(t, "M", dedupeName("M", func(s string) bool { return taken[s] }))
}
