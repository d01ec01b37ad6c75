package store

import (
	"os"
	"path/filepath"
)

// FileName is the backing store's file name.
const FileName = "workflows.json"

// DefaultPath returns workflows.json in the directory holding the running
// executable, falling back to the working directory when that cannot be
// determined.
func DefaultPath() string {
	return filepath.Join(appDir(), FileName)
}

func appDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
