// Package log provides leveled, structured logging for scene.
// Records carry a category and key/value fields and are written through
// log/slog. Until Init is called, warnings and errors go to stderr.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Category groups related log messages.
type Category string

const (
	CatStore  Category = "store"  // Backing store load/save and migrations
	CatRunner Category = "runner" // Workflow execution
	CatConfig Category = "config" // Configuration loading/saving
	CatCLI    Category = "cli"    // Command handlers
	CatUI     Category = "ui"     // Picker and prompts
)

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	current = newLogger(os.Stderr)
)

func init() {
	level.Set(LevelWarn)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init directs log output to w at the given minimum level.
func Init(w io.Writer, min Level) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(min)
	current = newLogger(w)
}

// Discard silences all logging. Tests use it to keep output clean.
func Discard() {
	Init(io.Discard, LevelError)
}

// SetLevel changes the minimum level without replacing the writer.
func SetLevel(min Level) {
	level.Set(min)
}

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

// Logger returns the underlying slog.Logger scoped to a category.
func Logger(cat Category) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.With("category", string(cat))
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(lvl Level, cat Category, msg string, fields ...any) {
	mu.RLock()
	l := current
	mu.RUnlock()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, msg, append([]any{"category", string(cat)}, fields...)...)
}
