package utils

import (
	"regexp"
	"strings"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// SafeFilename collapses whitespace to underscores and strips anything
// that does not belong in a filename.
func SafeFilename(s string) string {
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "_")
	return unsafeChars.ReplaceAllString(s, "")
}
