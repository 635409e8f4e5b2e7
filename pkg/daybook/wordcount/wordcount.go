// Package wordcount counts the words in rich-text journal content.
package wordcount

import (
	"regexp"
	"strings"
)

var markupRegex = regexp.MustCompile(`<[^>]*>`)

// Count returns the number of words in text after stripping markup tags.
// Words are runs of non-whitespace; empty or whitespace-only input counts 0.
func Count(text string) int {
	stripped := markupRegex.ReplaceAllString(text, " ")
	return len(strings.Fields(stripped))
}
