package inspector

import (
	"regexp"
	"strings"
)

var alphaPattern = regexp.MustCompile(`[A-Za-z]+`)

// hasLetters rejects texts that are only numbers or symbols, which are
// usually values rather than labels.
func hasLetters(text string) bool {
	return alphaPattern.MatchString(text)
}

// findText returns the first lettered text block at or below w
func findText(w Widget) string {
	if w == nil {
		return ""
	}
	if w.Role() == RoleTextBlock {
		if text := w.Text(); text != "" && hasLetters(text) {
			return text
		}
	}
	for _, child := range w.Children() {
		if text := findText(child); text != "" {
			return text
		}
	}
	return ""
}

// CleanWhitespace collapses runs of whitespace to single spaces and trims
func CleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
