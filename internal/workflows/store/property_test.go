package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/workflows"
)

// actionGen draws a valid action.
func actionGen() *rapid.Generator[workflows.Action] {
	return rapid.Custom(func(t *rapid.T) workflows.Action {
		return workflows.Action{
			Kind:  rapid.SampledFrom([]workflows.Kind{workflows.KindFolder, workflows.KindFile}).Draw(t, "kind"),
			Path:  rapid.StringMatching(`(/[a-zA-Z0-9 _.&-]{1,12}){1,4}`).Draw(t, "path"),
			Delay: float64(rapid.IntRange(0, 20).Draw(t, "delayTenths")) / 10,
		}
	})
}

// workflowsGen draws between 1 and 8 workflows with distinct names.
func workflowsGen() *rapid.Generator[[]*workflows.Workflow] {
	return rapid.Custom(func(t *rapid.T) []*workflows.Workflow {
		names := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,15}`), 1, 8,
			func(s string) string { return s },
		).Draw(t, "names")

		out := make([]*workflows.Workflow, 0, len(names))
		for _, name := range names {
			wf := workflows.New(name)
			wf.Actions = append(wf.Actions, rapid.SliceOfN(actionGen(), 0, 6).Draw(t, "actions")...)
			out = append(out, wf)
		}
		return out
	})
}

// TestProperty_AddThenGet checks that every added workflow reads back equal.
func TestProperty_AddThenGet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(filepath.Join(t.TempDir(), FileName))
		wfs := workflowsGen().Draw(rt, "workflows")

		for _, wf := range wfs {
			if err := m.Add(wf); err != nil {
				rt.Fatalf("add %q: %v", wf.Name, err)
			}
		}
		for _, wf := range wfs {
			got, ok := m.Get(wf.ID)
			if !ok {
				rt.Fatalf("get %s: not found", wf.ID)
			}
			require.Equal(rt, wf, got)
		}
	})
}

// TestProperty_DuplicateAddLeavesSizeUnchanged adds a second workflow reusing
// an existing name and checks the collection does not grow.
func TestProperty_DuplicateAddLeavesSizeUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(filepath.Join(t.TempDir(), FileName))
		wfs := workflowsGen().Draw(rt, "workflows")
		for _, wf := range wfs {
			require.NoError(rt, m.Add(wf))
		}

		victim := rapid.SampledFrom(wfs).Draw(rt, "victim")
		err := m.Add(workflows.New(victim.Name))

		if !sceneerrors.IsDuplicateName(err) {
			rt.Fatalf("expected duplicate name error, got %v", err)
		}
		if m.Len() != len(wfs) {
			rt.Fatalf("size changed: %d != %d", m.Len(), len(wfs))
		}
	})
}

// TestProperty_SaveLoadRoundTrip checks a fresh Manager reproduces the collection.
func TestProperty_SaveLoadRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		path := filepath.Join(t.TempDir(), FileName)
		m := New(path)
		for _, wf := range workflowsGen().Draw(rt, "workflows") {
			require.NoError(rt, m.Add(wf))
		}
		require.NoError(rt, m.Save())

		fresh, err := Open(path)
		require.NoError(rt, err)
		require.Equal(rt, m.List(), fresh.List())
	})
}

// TestProperty_CopyIsDeep checks copies get a new id and independent actions.
func TestProperty_CopyIsDeep(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := New(filepath.Join(t.TempDir(), FileName))
		wfs := workflowsGen().Draw(rt, "workflows")
		for _, wf := range wfs {
			require.NoError(rt, m.Add(wf))
		}

		src := rapid.SampledFrom(wfs).Draw(rt, "source")
		name := fmt.Sprintf("%s copy #%d", src.Name, rapid.IntRange(1, 99).Draw(rt, "n"))
		if m.IsNameDuplicate(name, "") {
			rt.Skip("generated name already taken")
		}

		dup, err := m.Copy(src.ID, name)
		require.NoError(rt, err)
		require.NotEqual(rt, src.ID, dup.ID)
		require.Equal(rt, name, dup.Name)
		require.Equal(rt, src.Actions, dup.Actions)

		dup.Actions = append(dup.Actions, workflows.Action{Kind: workflows.KindFile, Path: "/extra"})
		require.NoError(rt, m.Update(dup))

		orig, _ := m.Get(src.ID)
		require.Equal(rt, src.Actions, orig.Actions)
	})
}
