package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, LevelWarn)
	t.Cleanup(Discard)

	Info(CatStore, "hidden")
	Warn(CatStore, "shown", "path", "/tmp/workflows.json")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "category=store")
	assert.Contains(t, out, "path=/tmp/workflows.json")
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, LevelDebug)
	t.Cleanup(Discard)

	ErrorErr(CatRunner, "launch failed", errors.New("boom"), "index", 2)
	ErrorErr(CatRunner, "nil error", nil)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "index=2")
	assert.Contains(t, out, "error=<nil>")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, LevelError)
	t.Cleanup(Discard)

	Debug(CatConfig, "before")
	SetLevel(LevelDebug)
	Logger(CatConfig).Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "msg=after")
	assert.Contains(t, out, "category=config")
}
