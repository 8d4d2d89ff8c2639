package helpers

import (
	"strings"
	"unicode"
)

// FirstLine returns the first line of s, trimmed
func FirstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// StripSpaces removes every whitespace rune, full-width spaces included
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeSpaces turns full-width (U+3000) spaces into ASCII spaces
func NormalizeSpaces(s string) string {
	return strings.ReplaceAll(s, "\u3000", " ")
}
