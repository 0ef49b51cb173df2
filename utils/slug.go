// utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL slug from a display name: lowercase, runs of
// whitespace become single hyphens, everything outside [a-z0-9-] is dropped.
// Idempotent, so slugs can be re-derived from slugs safely.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
