package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
)

// execFunc runs an external program to completion.
type execFunc func(ctx context.Context, name string, args ...string) error

// OSLauncher opens paths through the desktop's default handler:
// xdg-open on Linux and the BSDs, open on macOS and the URL protocol
// handler on Windows.
type OSLauncher struct {
	goos string
	exec execFunc
}

// NewOSLauncher creates a launcher for the running platform.
func NewOSLauncher() *OSLauncher {
	return &OSLauncher{goos: runtime.GOOS, exec: runCommand}
}

// Command returns the program and arguments used to open path.
func (l *OSLauncher) Command(path string) (string, []string) {
	switch l.goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open opens path with its default application. Missing paths fail before
// any program is started.
func (l *OSLauncher) Open(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path: %w", sceneerrors.ErrInvalid)
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	name, args := l.Command(path)
	log.Debug(log.CatRunner, "opening path", "path", path, "cmd", name)
	return l.exec(ctx, name, args...)
}

// Reveal opens the folder at path, or the folder containing path when it
// is a file.
func (l *OSLauncher) Reveal(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}
	return l.Open(ctx, dir)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
