// Package diff computes which words in a rewritten text were newly introduced
// relative to the original, for output highlighting.
//
// The comparison is multiset-based and consumption-ordered: every normalized
// input word contributes one "credit" per occurrence, and output words spend
// those credits left to right. An output word with no remaining credit is
// marked changed. Whitespace segments are passed through untouched so the
// caller can render formatting exactly as produced.
package diff

import (
	"strings"
	"unicode"
)

// Segment is one run of the output text: either a whitespace run or a word.
type Segment struct {
	Content    string `json:"content"`
	Changed    bool   `json:"isChanged"`
	Whitespace bool   `json:"isWhitespace"`
}

// Compare returns the output text split into segments, each flagged as
// changed when its normalized form was not available in the input multiset.
// Returns nil when either text is empty.
func Compare(inputText, outputText string) []Segment {
	if inputText == "" || outputText == "" {
		return nil
	}

	counts := make(map[string]int)
	for _, w := range strings.Fields(inputText) {
		if n := normalize(w); n != "" {
			counts[n]++
		}
	}

	parts := splitKeepWhitespace(outputText)
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if isWhitespace(part) {
			segments = append(segments, Segment{Content: part, Whitespace: true})
			continue
		}
		n := normalize(part)
		if n == "" {
			// Punctuation-only tokens are never highlighted.
			segments = append(segments, Segment{Content: part})
			continue
		}
		if counts[n] > 0 {
			counts[n]--
			segments = append(segments, Segment{Content: part})
			continue
		}
		segments = append(segments, Segment{Content: part, Changed: true})
	}
	return segments
}

// normalize strips non-alphanumeric runes and lowercases, so "Dog," and
// "dog" compare equal. A word that changes only in punctuation is therefore
// never flagged; downstream rendering depends on that.
func normalize(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// splitKeepWhitespace splits s into alternating word and whitespace runs,
// preserving every byte of the original in order.
func splitKeepWhitespace(s string) []string {
	var parts []string
	start := 0
	inSpace := isSpaceRune(firstRune(s))
	for i, r := range s {
		if unicode.IsSpace(r) != inSpace {
			parts = append(parts, s[start:i])
			start = i
			inSpace = !inSpace
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func isSpaceRune(r rune) bool { return unicode.IsSpace(r) }

func isWhitespace(s string) bool { return strings.TrimSpace(s) == "" }
