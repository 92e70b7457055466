// Package slug derives URL-safe identifiers from human-readable titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts a title to a slug: the title is lower-cased, every maximal run
// of characters outside [a-z0-9] becomes a single hyphen, and leading or
// trailing hyphens are stripped.
//
//	Make("Grant Writing: Securing Funding for Projects") // "grant-writing-securing-funding-for-projects"
//
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(title string) string {
	s := nonAlnumRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is already in canonical slug form and non-empty.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
