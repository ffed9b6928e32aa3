package utils

import (
	"regexp"
	"strings"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns free text into a URL-safe handle:
// lowercase, runs of non-alphanumerics collapsed to a single hyphen,
// leading/trailing hyphens trimmed.
//
// "DJ Nova!" -> "dj-nova", "--- " -> ""
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
