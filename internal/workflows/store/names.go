package store

import (
	"fmt"
	"time"
)

// maxNameAttempts bounds the numeric suffix search in uniqueName.
const maxNameAttempts = 1000

// uniqueName returns first if it is free, otherwise the first free result of
// next(2), next(3), ... The taken callback decides what "free" means.
func uniqueName(first string, next func(n int) string, taken func(string) bool) string {
	if !taken(first) {
		return first
	}
	for i := 2; i <= maxNameAttempts; i++ {
		candidate := next(i)
		if !taken(candidate) {
			return candidate
		}
	}

	// Fallback: use a timestamp suffix (unlikely to hit this)
	return fmt.Sprintf("%s %d", first, time.Now().UnixNano())
}

// copyName derives the suggested name for a copy of base:
// "base (copy)", then "base (copy 2)", "base (copy 3)", ...
func copyName(base string, taken func(string) bool) string {
	return uniqueName(
		fmt.Sprintf("%s (copy)", base),
		func(n int) string { return fmt.Sprintf("%s (copy %d)", base, n) },
		taken,
	)
}

// dedupeName disambiguates a name that collides on load: "name (2)", "name (3)", ...
func dedupeName(name string, taken func(string) bool) string {
	return uniqueName(
		name,
		func(n int) string { return fmt.Sprintf("%s (%d)", name, n) },
		taken,
	)
}
