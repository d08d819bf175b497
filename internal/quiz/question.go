// Package quiz generates multiple choice question sets and runs quiz
// sessions over them.
package quiz

import (
	"errors"
	"fmt"
)

// Mode selects which content a quiz draws from.
type Mode string

const (
	ModeHangul    Mode = "hangul"
	ModeVocab     Mode = "vocab"
	ModeParticles Mode = "particles"
	ModeSentences Mode = "sentences"
	ModeMixed     Mode = "mixed"
)

// Question set sizes per mode.
const (
	SingleSize    = 10
	ParticleSize  = 8
	SentenceSize  = 6
	MixedHangul   = 4
	MixedVocab    = 3
	MixedParticle = 2
	MixedSentence = 1
	MixedSize     = 10

	OptionCount = 4
)

var (
	ErrUnknownMode         = errors.New("unknown quiz mode")
	ErrInsufficientContent = errors.New("content table too small for quiz")
	ErrInvalidTransition   = errors.New("invalid quiz state transition")
	ErrInvalidOption       = errors.New("option index out of range")
	ErrSessionNotFound     = errors.New("quiz session not found")
)

// ModeInfo describes a mode for the practice menu.
type ModeInfo struct {
	Mode        Mode   `json:"mode"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Size        int    `json:"size"`
}

var modes = []ModeInfo{
	{ModeHangul, "Hangul Characters", "Identify consonants & vowels", "🔤", SingleSize},
	{ModeVocab, "Vocabulary", "Match Korean words to meanings", "📚", SingleSize},
	{ModeParticles, "Particle Practice", "Fill in 은/는, 이/가, 을/를, 에/에서", "🧩", ParticleSize},
	{ModeSentences, "Sentence & Conjugation", "Test grammar and sentence structure", "📝", SentenceSize},
	{ModeMixed, "Ultimate Mixed", "All types combined", "🌟", MixedSize},
}

// Modes lists every mode in menu order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, len(modes))
	copy(out, modes)
	return out
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m.Mode) == s {
			return m.Mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Question is one generated multiple choice question.
type Question struct {
	Prompt       string   `json:"prompt"`
	Subtext      string   `json:"subtext,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Tag          string   `json:"tag"`
}

// IsCorrect reports whether option i is the right answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// CorrectAnswer returns the text of the right option.
func (q Question) CorrectAnswer() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}
