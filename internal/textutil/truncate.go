// Package textutil provides word-boundary-aware text truncation for index
// entry rendering.
package textutil

import (
	"fmt"
	"unicode"
)

// Truncate shortens text to at most maxLen visible characters, cutting at a
// word boundary and annotating how much was omitted, e.g.
//
//	Truncate("the quick brown fox", 11)
//	// "the quick...[10 more characters...]"
//
// If the text already fits it is returned unchanged. If no whitespace
// boundary exists before the cut point the text is returned unmodified
// rather than producing an empty fragment.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	// Backtrack from the cut point to the last whitespace boundary
	boundary := -1
	for i := maxLen; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			boundary = i
			break
		}
	}
	if boundary <= 0 {
		return text
	}

	// Drop trailing whitespace from the kept portion
	end := boundary
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == 0 {
		return text
	}

	omitted := len(runes) - end
	return fmt.Sprintf("%s...[%d more characters...]", string(runes[:end]), omitted)
}
