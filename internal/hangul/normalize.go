package hangul

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// NormalizeText trims text and collapses inner whitespace runs to one space.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// TrimAllWhitespace removes every whitespace character from text.
func TrimAllWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// IsRomanized reports whether more than half of the non-space characters
// of s are ASCII letters, i.e. the learner typed romanization rather than
// Hangul.
func IsRomanized(s string) bool {
	letters, total := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return total > 0 && float64(letters)/float64(total) > 0.5
}

// StableID derives a positive id from parts using FNV-1a, so reseeding the
// same content yields the same ids.
func StableID(parts ...string) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprint(h, strings.Join(parts, "|"))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF)
}
