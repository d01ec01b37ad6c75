// Package testutil provides helper functions for testing.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "scene-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// StorePath returns a path for a backing store file that does not exist yet.
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(TempDir(t), "workflows.json")
}

// WriteStore writes content as a backing store file and returns its path.
// The file is automatically deleted when the test completes.
func WriteStore(t *testing.T, content string) string {
	t.Helper()

	path := StorePath(t)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}

	return path
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// Event is one call recorded by FakeLauncher or FakeSleeper.
type Event struct {
	Op    string // "open", "reveal" or "wait"
	Path  string
	Delay time.Duration
}

// Recorder collects events from fakes in call order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// FakeLauncher records paths instead of opening them. Paths listed in
// Fail return an error.
type FakeLauncher struct {
	Rec  *Recorder
	Fail map[string]bool
}

// NewFakeLauncher creates a FakeLauncher that records into rec.
func NewFakeLauncher(rec *Recorder, failing ...string) *FakeLauncher {
	fail := make(map[string]bool, len(failing))
	for _, p := range failing {
		fail[p] = true
	}
	return &FakeLauncher{Rec: rec, Fail: fail}
}

// Open records the path and fails for paths in Fail.
func (f *FakeLauncher) Open(ctx context.Context, path string) error {
	f.Rec.add(Event{Op: "open", Path: path})
	if f.Fail[path] {
		return fmt.Errorf("no application to open %s", path)
	}
	return nil
}

// Reveal records the path and fails for paths in Fail.
func (f *FakeLauncher) Reveal(ctx context.Context, path string) error {
	f.Rec.add(Event{Op: "reveal", Path: path})
	if f.Fail[path] {
		return fmt.Errorf("no application to open %s", path)
	}
	return nil
}

// FakeSleeper records waits without sleeping. It honours an already
// canceled context.
type FakeSleeper struct {
	Rec *Recorder
}

// Sleep records d and returns ctx.Err() if the context is done.
func (s *FakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.Rec.add(Event{Op: "wait", Delay: d})
	return ctx.Err()
}
