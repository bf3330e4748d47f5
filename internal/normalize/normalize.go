// Package normalize reduces a document to the characters that matter for
// proofreading: letters, digits, underscore and CJK ideographs.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes text to NFC and drops punctuation, whitespace, line
// breaks and symbols.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if Keep(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Keep reports whether r survives normalization.
func Keep(r rune) bool {
	switch {
	case r == '_':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r):
		return true
	case unicode.Is(unicode.Han, r):
		return true
	}
	return false
}
