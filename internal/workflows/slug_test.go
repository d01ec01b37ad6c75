package workflows

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Morning Routine", "morning-routine"},
		{"punctuation", "Fix: Bug #123!", "fix-bug-123"},
		{"surrounding space", "  Work  ", "work"},
		{"unicode", "工作 (副本)", "工作-副本"},
		{"nothing left", "!!!", "workflow"},
		{"empty", "", "workflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := Slugify(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(long), maxSlugLen)
	assert.False(t, strings.HasSuffix(long, "-"))

	wide := Slugify(strings.Repeat("工", 40))
	assert.LessOrEqual(t, len(wide), maxSlugLen)
	assert.True(t, utf8.ValidString(wide))
}
