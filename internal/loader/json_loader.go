package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/Z4rru/hangulmastery/internal/content"
)

// OptionCount is the number of choices every multiple choice question carries.
const OptionCount = 4

// JSONLoader decodes the content tables from a directory of JSON files.
type JSONLoader struct {
	fsys fs.FS
	dir  string
}

type hangulFile struct {
	Consonants       []content.Character     `json:"consonants"`
	Vowels           []content.Character     `json:"vowels"`
	DoubleConsonants []content.Character     `json:"double_consonants"`
	CompoundVowels   []content.Character     `json:"compound_vowels"`
	ConsonantTrios   []content.ConsonantTrio `json:"consonant_trios"`
	SyllableBlocks   content.SyllableBlocks  `json:"syllable_blocks"`
}

type vocabularyFile struct {
	Categories []content.VocabCategory `json:"categories"`
}

type grammarFile struct {
	Rules              []content.GrammarRule       `json:"rules"`
	PronunciationRules []content.PronunciationRule `json:"pronunciation_rules"`
	SentenceExercises  []content.SentenceExercise  `json:"sentence_exercises"`
}

type cultureFile struct {
	Notes       []content.CultureNote `json:"notes"`
	Expressions []content.Expression  `json:"expressions"`
}

type quizFile struct {
	Particles []content.BankQuestion `json:"particles"`
	Sentences []content.BankQuestion `json:"sentences"`
}

type wellnessFile struct {
	BreathingCycle      []content.BreathPhase   `json:"breathing_cycle"`
	Tips                []content.Tip           `json:"tips"`
	Affirmations        []string                `json:"affirmations"`
	GroundingSteps      []content.GroundingStep `json:"grounding_steps"`
	FocusPresetsMinutes []int                   `json:"focus_presets_minutes"`
}

type homeFile struct {
	Sections     []content.Section     `json:"sections"`
	Proverbs     []content.Expression  `json:"proverbs"`
	Achievements []content.Achievement `json:"achievements"`
	WordsOfDay   []content.Expression  `json:"words_of_day"`
}

// NewJSONLoader reads content files from dir inside fsys.
func NewJSONLoader(fsys fs.FS, dir string) *JSONLoader {
	return &JSONLoader{fsys: fsys, dir: dir}
}

// Embedded returns a loader over the content bundled into the binary.
func Embedded() *JSONLoader {
	return NewJSONLoader(content.DataFS, "data")
}

// NewDirLoader returns a loader over a content directory on disk.
func NewDirLoader(dir string) (*JSONLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat content dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return NewJSONLoader(os.DirFS(dir), "."), nil
}

// LoadAll decodes and validates every content table.
func (l *JSONLoader) LoadAll() (*content.Catalog, error) {
	var (
		h  hangulFile
		v  vocabularyFile
		g  grammarFile
		c  cultureFile
		q  quizFile
		w  wellnessFile
		hm homeFile
	)

	files := []struct {
		name string
		dst  any
	}{
		{"hangul.json", &h},
		{"vocabulary.json", &v},
		{"grammar.json", &g},
		{"culture.json", &c},
		{"quiz.json", &q},
		{"wellness.json", &w},
		{"home.json", &hm},
	}
	for _, f := range files {
		if err := l.loadJSONFile(f.name, f.dst); err != nil {
			return nil, err
		}
	}

	cat := &content.Catalog{
		Consonants:         h.Consonants,
		Vowels:             h.Vowels,
		DoubleConsonants:   h.DoubleConsonants,
		CompoundVowels:     h.CompoundVowels,
		ConsonantTrios:     h.ConsonantTrios,
		SyllableBlocks:     h.SyllableBlocks,
		VocabCategories:    v.Categories,
		GrammarRules:       g.Rules,
		PronunciationRules: g.PronunciationRules,
		SentenceExercises:  g.SentenceExercises,
		CultureNotes:       c.Notes,
		Expressions:        c.Expressions,
		ParticleBank:       q.Particles,
		SentenceBank:       q.Sentences,
		BreathingCycle:     w.BreathingCycle,
		WellnessTips:       w.Tips,
		Affirmations:       w.Affirmations,
		GroundingSteps:     w.GroundingSteps,
		FocusPresets:       w.FocusPresetsMinutes,
		Sections:           hm.Sections,
		Proverbs:           hm.Proverbs,
		Achievements:       hm.Achievements,
		WordsOfDay:         hm.WordsOfDay,
	}
	cat.Index()

	if err := Validate(cat); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	return cat, nil
}

func (l *JSONLoader) loadJSONFile(name string, dst any) error {
	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Validate checks the structural rules the quiz engine and widgets rely on.
// All violations are reported together.
func Validate(c *content.Catalog) error {
	var errs []error

	if n := len(c.Characters()); n < OptionCount {
		errs = append(errs, fmt.Errorf("need at least %d alphabet characters, have %d", OptionCount, n))
	}
	if n := len(c.Vocabulary()); n < OptionCount {
		errs = append(errs, fmt.Errorf("need at least %d vocabulary items, have %d", OptionCount, n))
	}

	seen := make(map[string]bool)
	for _, item := range c.Vocabulary() {
		if item.Korean == "" || item.English == "" {
			errs = append(errs, fmt.Errorf("vocabulary item in %q missing headword or translation", item.Category))
		}
		if !item.Level.Valid() {
			errs = append(errs, fmt.Errorf("vocabulary item %q has unknown level %q", item.Korean, item.Level))
		}
		if seen[item.Korean] {
			errs = append(errs, fmt.Errorf("duplicate vocabulary headword %q", item.Korean))
		}
		seen[item.Korean] = true
	}

	errs = append(errs, validateBank("particle", c.ParticleBank)...)
	errs = append(errs, validateBank("sentence", c.SentenceBank)...)

	if len(c.BreathingCycle) == 0 {
		errs = append(errs, errors.New("breathing cycle is empty"))
	}
	for _, p := range c.BreathingCycle {
		if p.DurationMS <= 0 {
			errs = append(errs, fmt.Errorf("breathing phase %q has non-positive duration", p.Phase))
		}
	}
	for _, m := range c.FocusPresets {
		if m <= 0 {
			errs = append(errs, fmt.Errorf("focus preset %d must be positive", m))
		}
	}
	if len(c.Sections) == 0 {
		errs = append(errs, errors.New("no sections defined"))
	}
	if len(c.WordsOfDay) == 0 {
		errs = append(errs, errors.New("word of the day list is empty"))
	}

	return errors.Join(errs...)
}

func validateBank(name string, bank []content.BankQuestion) []error {
	var errs []error
	prompts := make(map[string]bool, len(bank))
	for i, q := range bank {
		if len(q.Options) != OptionCount {
			errs = append(errs, fmt.Errorf("%s question %d has %d options", name, i, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Errorf("%s question %d has correct index %d out of range", name, i, q.CorrectIndex))
		}
		if q.Explanation == "" {
			errs = append(errs, fmt.Errorf("%s question %d has no explanation", name, i))
		}
		if !distinct(q.Options) {
			errs = append(errs, fmt.Errorf("%s question %d repeats an option", name, i))
		}
		if prompts[q.Prompt] {
			errs = append(errs, fmt.Errorf("%s question %d repeats prompt %q", name, i, q.Prompt))
		}
		prompts[q.Prompt] = true
	}
	return errs
}

func distinct(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// Load reads the catalog from dir, or from the embedded content when dir
// is empty.
func Load(dir string) (*content.Catalog, error) {
	if dir == "" {
		return Embedded().LoadAll()
	}
	l, err := NewDirLoader(dir)
	if err != nil {
		return nil, err
	}
	return l.LoadAll()
}
