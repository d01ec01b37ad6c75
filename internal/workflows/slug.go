package workflows

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// slugRegex matches runs of characters that are not letters or digits
	slugRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	lowerCaser = cases.Lower(language.Und)
)

// maxSlugLen caps slug length in bytes.
const maxSlugLen = 50

// Slugify turns a workflow name into a file-name friendly slug.
// Letters and digits of any script are kept, everything else collapses to
// a single hyphen. An empty result becomes "workflow".
//
// Examples:
//
//	"Morning Routine" -> "morning-routine"
//	"Fix: Bug #123!"  -> "fix-bug-123"
//	"工作 (副本)"       -> "工作-副本"
func Slugify(name string) string {
	result := lowerCaser.String(strings.TrimSpace(name))
	result = slugRegex.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > maxSlugLen {
		cutoff := maxSlugLen
		if idx := strings.LastIndex(result[:cutoff], "-"); idx > 0 {
			cutoff = idx
		} else {
			// Back off to a rune boundary.
			for cutoff > 0 && !isRuneStart(result[cutoff]) {
				cutoff--
			}
		}
		result = strings.Trim(result[:cutoff], "-")
	}

	if result == "" {
		return "workflow"
	}
	return result
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
