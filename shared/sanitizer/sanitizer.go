package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips every HTML element from free text typed by guests and trims it.
// Entities produced by the policy are decoded back so plain text round-trips.
func Text(value string) string {
	if value == "" {
		return value
	}

	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(value)))
}
