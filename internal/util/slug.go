package util

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s]`)
	spaces       = regexp.MustCompile(`\s+`)
)

// GenerateSlug drops punctuation, joins words with "-" and lowercases the result.
func GenerateSlug(name string) string {
	cleaned := nonSlugChars.ReplaceAllString(name, "")
	slug := spaces.ReplaceAllString(strings.TrimSpace(cleaned), "-")
	return strings.ToLower(slug)
}
