// Package content holds the static learning material: alphabet tables,
// vocabulary, grammar, culture notes, quiz banks and wellness content.
package content

// CharCategory groups alphabet characters the way the Hangul lab tabs do.
type CharCategory string

const (
	CategoryConsonant CharCategory = "consonant"
	CategoryVowel     CharCategory = "vowel"
	CategoryDouble    CharCategory = "double"
	CategoryCompound  CharCategory = "compound"
)

// Level is a difficulty tier shared by vocabulary and grammar.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the known tiers.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Character is a single Hangul letter (jamo).
type Character struct {
	Char         string       `json:"char"`
	Romanization string       `json:"romanization"`
	Name         string       `json:"name"`
	NameKorean   string       `json:"name_korean"`
	Sound        string       `json:"sound"`
	Hint         string       `json:"hint"` // Filipino pronunciation hint
	Category     CharCategory `json:"category"`
	Group        string       `json:"group,omitempty"` // articulation group, consonants only
}

// ConsonantTrio lines up the plain, aspirated and tense forms of a consonant.
type ConsonantTrio struct {
	Plain          string  `json:"plain"`
	Aspirated      *string `json:"aspirated"`
	Tense          string  `json:"tense"`
	Label          string  `json:"label"`
	PlainSound     string  `json:"plain_sound"`
	AspiratedSound string  `json:"aspirated_sound"`
	TenseSound     string  `json:"tense_sound"`
}

// SyllableStructure describes one block shape (CV, CVC, CVCC).
type SyllableStructure struct {
	Pattern   string `json:"pattern"`
	Label     string `json:"label"`
	Example   string `json:"example"`
	Breakdown string `json:"breakdown"`
	Layout    string `json:"layout"`
}

// SyllableBlocks is the explainer shown above the block builder.
type SyllableBlocks struct {
	Title       string              `json:"title"`
	Explanation string              `json:"explanation"`
	Structures  []SyllableStructure `json:"structures"`
}

// Expression is a Korean phrase with its romanization and both translations.
// Used for usage examples, proverbs, K-drama expressions and the word of the day.
type Expression struct {
	Korean       string `json:"korean"`
	Romanization string `json:"romanization"`
	English      string `json:"english"`
	Filipino     string `json:"filipino"`
}

// VocabItem is one vocabulary headword.
type VocabItem struct {
	Korean       string      `json:"korean"`
	Romanization string      `json:"romanization"`
	English      string      `json:"english"`
	Filipino     string      `json:"filipino"`
	Note         string      `json:"note,omitempty"`
	Level        Level       `json:"level"`
	Example      *Expression `json:"example,omitempty"`
	Category     string      `json:"category,omitempty"`
}

// VocabCategory is a themed vocabulary list.
type VocabCategory struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Emoji string      `json:"emoji"`
	Items []VocabItem `json:"items"`
}

// GrammarRule is one entry of the grammar guide.
type GrammarRule struct {
	ID               int          `json:"id"`
	Title            string       `json:"title"`
	TitleKorean      string       `json:"title_korean"`
	Explanation      string       `json:"explanation"`
	Structure        string       `json:"structure"`
	Examples         []Expression `json:"examples"`
	FilipinoParallel string       `json:"filipino_parallel"`
	Tip              string       `json:"tip"`
	Level            Level        `json:"level"`
}

// PronunciationExample shows a written form next to how it is spoken.
type PronunciationExample struct {
	Written      string `json:"written"`
	Pronounced   string `json:"pronounced"`
	Romanization string `json:"romanization"`
	Meaning      string `json:"meaning"`
}

// PronunciationRule is a sound-change rule such as linking or nasalization.
type PronunciationRule struct {
	ID           int                    `json:"id"`
	Title        string                 `json:"title"`
	TitleKorean  string                 `json:"title_korean"`
	Rule         string                 `json:"rule"`
	Examples     []PronunciationExample `json:"examples"`
	FilipinoNote string                 `json:"filipino_note"`
}

// CultureNote is one card of the culture corner.
type CultureNote struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	TitleKorean        string `json:"title_korean"`
	Emoji              string `json:"emoji"`
	Content            string `json:"content"`
	FilipinoConnection string `json:"filipino_connection"`
}

// SentenceExercise is a scrambled sentence for the sentence builder.
type SentenceExercise struct {
	ID        int      `json:"id"`
	Words     []string `json:"words"`
	Particles []string `json:"particles"`
	Answer    string   `json:"answer"`
	Meaning   string   `json:"meaning"`
	Filipino  string   `json:"filipino"`
}

// BankQuestion is a hand-authored multiple choice question.
type BankQuestion struct {
	Prompt       string   `json:"prompt"`
	Subtext      string   `json:"subtext,omitempty"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Tag          string   `json:"tag"`
}

// BreathPhase is one step of the box-breathing cycle.
type BreathPhase struct {
	Phase        string `json:"phase"`
	Label        string `json:"label"`
	DurationMS   int    `json:"duration_ms"`
	Korean       string `json:"korean"`
	Romanization string `json:"romanization"`
}

// Tip is a wellness or study tip.
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Emoji   string `json:"emoji"`
}

// GroundingStep is one sense of the 5-4-3-2-1 grounding exercise.
type GroundingStep struct {
	Count        int    `json:"count"`
	Sense        string `json:"sense"`
	Korean       string `json:"korean"`
	Romanization string `json:"romanization"`
	Description  string `json:"description"`
	Emoji        string `json:"emoji"`
}

// Section is a learning area reachable from the home dashboard.
type Section struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Subtext string `json:"subtext"`
	Emoji   string `json:"emoji"`
}

// Achievement is a badge; Condition names the rule that unlocks it.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TitleKorean string `json:"title_korean"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Condition   string `json:"condition"`
}
