// Package hangul provides helpers for working with Hangul text: syllable
// block decomposition, final consonant detection and particle selection.
package hangul

import "strings"

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3

	vowelCount = 21
	tailCount  = 28
	blockSize  = vowelCount * tailCount // 588
)

var (
	leads = []string{
		"ㄱ", "ㄲ", "ㄴ", "ㄷ", "ㄸ", "ㄹ", "ㅁ", "ㅂ", "ㅃ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅉ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
	vowels = []string{
		"ㅏ", "ㅐ", "ㅑ", "ㅒ", "ㅓ", "ㅔ", "ㅕ", "ㅖ", "ㅗ", "ㅘ",
		"ㅙ", "ㅚ", "ㅛ", "ㅜ", "ㅝ", "ㅞ", "ㅟ", "ㅠ", "ㅡ", "ㅢ", "ㅣ",
	}
	tails = []string{
		"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄵ", "ㄶ", "ㄷ", "ㄹ", "ㄺ",
		"ㄻ", "ㄼ", "ㄽ", "ㄾ", "ㄿ", "ㅀ", "ㅁ", "ㅂ", "ㅄ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
)

// tailRieul is the index of ㄹ in tails.
const tailRieul = 8

// Block is a decomposed syllable block.
type Block struct {
	Syllable string `json:"syllable"`
	Lead     string `json:"lead"`
	Vowel    string `json:"vowel"`
	Tail     string `json:"tail,omitempty"` // batchim
	Pattern  string `json:"pattern"`        // CV, CVC or CVCC
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// Decompose splits a syllable block into its jamo.
func Decompose(r rune) (Block, bool) {
	if !IsSyllable(r) {
		return Block{}, false
	}

	s := int(r - syllableBase)
	tail := tails[s%tailCount]

	b := Block{
		Syllable: string(r),
		Lead:     leads[s/blockSize],
		Vowel:    vowels[(s%blockSize)/tailCount],
		Tail:     tail,
		Pattern:  "CV",
	}
	if tail != "" {
		b.Pattern = "CVC"
		if isCompoundTail(s % tailCount) {
			b.Pattern = "CVCC"
		}
	}
	return b, true
}

// Compose builds a syllable from jamo. tail may be empty.
func Compose(lead, vowel, tail string) (rune, bool) {
	li := indexOf(leads, lead)
	vi := indexOf(vowels, vowel)
	ti := indexOf(tails, tail)
	if li < 0 || vi < 0 || ti < 0 {
		return 0, false
	}
	return rune(syllableBase + li*blockSize + vi*tailCount + ti), true
}

// DecomposeText decomposes every syllable in text, skipping anything else.
func DecomposeText(text string) []Block {
	var blocks []Block
	for _, r := range text {
		if b, ok := Decompose(r); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// HasBatchim reports whether the last syllable of word ends in a consonant.
// Trailing non-Hangul characters are ignored; a word with no syllables
// reports false.
func HasBatchim(word string) bool {
	r, ok := lastSyllable(word)
	if !ok {
		return false
	}
	return (r-syllableBase)%tailCount != 0
}

// EndsInRieul reports whether the final consonant of word is ㄹ.
func EndsInRieul(word string) bool {
	r, ok := lastSyllable(word)
	if !ok {
		return false
	}
	return (r-syllableBase)%tailCount == tailRieul
}

func lastSyllable(word string) (rune, bool) {
	runes := []rune(strings.TrimSpace(word))
	for i := len(runes) - 1; i >= 0; i-- {
		if IsSyllable(runes[i]) {
			return runes[i], true
		}
	}
	return 0, false
}

func isCompoundTail(i int) bool {
	switch tails[i] {
	case "ㄳ", "ㄵ", "ㄶ", "ㄺ", "ㄻ", "ㄼ", "ㄽ", "ㄾ", "ㄿ", "ㅀ", "ㅄ":
		return true
	}
	return false
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
