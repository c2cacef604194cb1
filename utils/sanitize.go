package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize cleans user-submitted content to prevent stored XSS.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// SanitizeAndTrim cleans content and strips surrounding whitespace, the
// form every post and comment body passes through before persisting.
func SanitizeAndTrim(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
