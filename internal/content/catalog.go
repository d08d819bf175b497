package content

import (
	"embed"
	"slices"
	"strings"
	"time"

	"github.com/Z4rru/hangulmastery/internal/hangul"
)

// DataFS holds the bundled content tables.
//
//go:embed data/*.json
var DataFS embed.FS

// Section keys. Home is a navigation target but never counts as a visit.
const (
	SectionHome       = "home"
	SectionHangul     = "hangul"
	SectionVocabulary = "vocabulary"
	SectionGrammar    = "grammar"
	SectionCulture    = "culture"
	SectionPractice   = "practice"
	SectionWellness   = "wellness"
)

const dayMillis = 86_400_000

// Catalog is the fully loaded, read-only content set.
// Slices are shared; callers must copy before reordering.
type Catalog struct {
	Consonants       []Character     `json:"consonants"`
	Vowels           []Character     `json:"vowels"`
	DoubleConsonants []Character     `json:"double_consonants"`
	CompoundVowels   []Character     `json:"compound_vowels"`
	ConsonantTrios   []ConsonantTrio `json:"consonant_trios"`
	SyllableBlocks   SyllableBlocks  `json:"syllable_blocks"`

	VocabCategories []VocabCategory `json:"vocab_categories"`

	GrammarRules       []GrammarRule       `json:"grammar_rules"`
	PronunciationRules []PronunciationRule `json:"pronunciation_rules"`
	SentenceExercises  []SentenceExercise  `json:"sentence_exercises"`

	CultureNotes []CultureNote `json:"culture_notes"`
	Expressions  []Expression  `json:"expressions"`

	ParticleBank []BankQuestion `json:"particle_bank"`
	SentenceBank []BankQuestion `json:"sentence_bank"`

	BreathingCycle []BreathPhase   `json:"breathing_cycle"`
	WellnessTips   []Tip           `json:"wellness_tips"`
	Affirmations   []string        `json:"affirmations"`
	GroundingSteps []GroundingStep `json:"grounding_steps"`
	FocusPresets   []int           `json:"focus_presets"`

	Sections     []Section     `json:"sections"`
	Proverbs     []Expression  `json:"proverbs"`
	Achievements []Achievement `json:"achievements"`
	WordsOfDay   []Expression  `json:"words_of_day"`

	allChars []Character
	allVocab []VocabItem
}

// Index builds the flattened views. The loader calls it once after decoding.
func (c *Catalog) Index() {
	c.allChars = slices.Concat(c.Consonants, c.Vowels, c.DoubleConsonants, c.CompoundVowels)

	c.allVocab = c.allVocab[:0]
	for i := range c.VocabCategories {
		cat := &c.VocabCategories[i]
		for j := range cat.Items {
			cat.Items[j].Category = cat.Key
		}
		c.allVocab = append(c.allVocab, cat.Items...)
	}
}

// Characters returns every alphabet character in lab order.
func (c *Catalog) Characters() []Character {
	return c.allChars
}

// CharactersBy returns the characters of one category.
func (c *Catalog) CharactersBy(cat CharCategory) []Character {
	switch cat {
	case CategoryConsonant:
		return c.Consonants
	case CategoryVowel:
		return c.Vowels
	case CategoryDouble:
		return c.DoubleConsonants
	case CategoryCompound:
		return c.CompoundVowels
	}
	return nil
}

// Vocabulary returns every vocabulary item across categories.
func (c *Catalog) Vocabulary() []VocabItem {
	return c.allVocab
}

// Category looks up a vocabulary category by key.
func (c *Catalog) Category(key string) (VocabCategory, bool) {
	for _, cat := range c.VocabCategories {
		if cat.Key == key {
			return cat, true
		}
	}
	return VocabCategory{}, false
}

// VocabFilter narrows the vocabulary list. Zero values match everything.
type VocabFilter struct {
	Category string
	Level    Level
	Query    string
}

// FilterVocab applies f over the whole vocabulary. The headword is matched
// as a plain substring; romanization and both translations ignore case.
func (c *Catalog) FilterVocab(f VocabFilter) []VocabItem {
	q := strings.TrimSpace(f.Query)
	lq := strings.ToLower(q)

	out := make([]VocabItem, 0, len(c.allVocab))
	for _, item := range c.allVocab {
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.Level != "" && item.Level != f.Level {
			continue
		}
		if q != "" &&
			!strings.Contains(item.Korean, q) &&
			!strings.Contains(strings.ToLower(item.Romanization), lq) &&
			!strings.Contains(strings.ToLower(item.English), lq) &&
			!strings.Contains(strings.ToLower(item.Filipino), lq) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// WordOfDay picks the featured word for the UTC day containing now.
func (c *Catalog) WordOfDay(now time.Time) Expression {
	if len(c.WordsOfDay) == 0 {
		return Expression{}
	}
	day := now.UnixMilli() / dayMillis
	idx := int(day % int64(len(c.WordsOfDay)))
	if idx < 0 {
		idx += len(c.WordsOfDay)
	}
	return c.WordsOfDay[idx]
}

// SentenceExercise looks up a sentence builder exercise by id.
func (c *Catalog) SentenceExercise(id int) (SentenceExercise, bool) {
	for _, ex := range c.SentenceExercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return SentenceExercise{}, false
}

// CheckSentence reports whether words, in order, spell the exercise answer.
// Spacing and the trailing period are ignored; copula tiles such as 이에요
// attach to the preceding noun.
func (ex SentenceExercise) CheckSentence(words []string) bool {
	if len(words) == 0 {
		return false
	}
	got := hangul.TrimAllWhitespace(strings.TrimSuffix(strings.Join(words, ""), "."))
	want := hangul.TrimAllWhitespace(strings.TrimSuffix(ex.Answer, "."))
	return got == want
}

// SectionKeys lists the countable sections in dashboard order.
func (c *Catalog) SectionKeys() []string {
	keys := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		keys[i] = s.Key
	}
	return keys
}

// HasSection reports whether key is a known, countable section.
func (c *Catalog) HasSection(key string) bool {
	for _, s := range c.Sections {
		if s.Key == key {
			return true
		}
	}
	return false
}
