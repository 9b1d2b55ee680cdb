package utils

import (
	"html"
	"strings"
)

// Sanitize trims surrounding whitespace and HTML-escapes the value.
// Stored field values are always escaped so they are safe to render as-is.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
