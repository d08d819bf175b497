package quiz

import (
	"fmt"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/sampling"
)

// Generator builds question sets from a content catalog.
type Generator struct {
	cat *content.Catalog
	rnd sampling.Rand
}

// NewGenerator creates a generator. rnd must be safe for concurrent use if
// the generator is shared.
func NewGenerator(cat *content.Catalog, rnd sampling.Rand) *Generator {
	return &Generator{cat: cat, rnd: rnd}
}

// Generate returns a fresh question set for mode. Sample sizes larger than
// a table are capped at the table size; a table that cannot supply three
// distinct wrong answers yields ErrInsufficientContent.
func (g *Generator) Generate(mode Mode) ([]Question, error) {
	var (
		qs  []Question
		err error
	)

	switch mode {
	case ModeHangul:
		qs, err = g.hangulQuestions(SingleSize)
	case ModeVocab:
		qs, err = g.vocabQuestions(SingleSize)
	case ModeParticles:
		qs = g.bankQuestions(g.cat.ParticleBank, ParticleSize)
	case ModeSentences:
		qs = g.bankQuestions(g.cat.SentenceBank, SentenceSize)
	case ModeMixed:
		qs, err = g.mixedQuestions()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, err
	}

	return uniquePrompts(qs), nil
}

func (g *Generator) mixedQuestions() ([]Question, error) {
	hq, err := g.hangulQuestions(MixedHangul)
	if err != nil {
		return nil, err
	}
	vq, err := g.vocabQuestions(MixedVocab)
	if err != nil {
		return nil, err
	}

	qs := make([]Question, 0, MixedSize)
	qs = append(qs, hq...)
	qs = append(qs, vq...)
	qs = append(qs, g.bankQuestions(g.cat.ParticleBank, MixedParticle)...)
	qs = append(qs, g.bankQuestions(g.cat.SentenceBank, MixedSentence)...)

	return sampling.Sample(g.rnd, qs, MixedSize), nil
}

func (g *Generator) hangulQuestions(n int) ([]Question, error) {
	pool := g.cat.Characters()
	chars := sampling.Sample(g.rnd, pool, n)

	qs := make([]Question, 0, len(chars))
	for _, c := range chars {
		wrong, err := sampling.Distractors(g.rnd, pool, c.Romanization,
			func(x content.Character) string { return x.Romanization }, OptionCount-1)
		if err != nil {
			return nil, fmt.Errorf("%w: hangul distractors for %s: %v", ErrInsufficientContent, c.Char, err)
		}
		opts, idx := sampling.Options(g.rnd, c.Romanization, wrong)
		qs = append(qs, Question{
			Prompt:       c.Char,
			Subtext:      "What is the romanization?",
			Options:      opts,
			CorrectIndex: idx,
			Explanation:  fmt.Sprintf(`%s = "%s" (%s), romanized "%s". %s`, c.Char, c.Name, c.NameKorean, c.Romanization, c.Hint),
			Tag:          "Hangul",
		})
	}
	return qs, nil
}

func (g *Generator) vocabQuestions(n int) ([]Question, error) {
	pool := g.cat.Vocabulary()
	words := sampling.Sample(g.rnd, pool, n)

	qs := make([]Question, 0, len(words))
	for _, w := range words {
		wrong, err := sampling.Distractors(g.rnd, pool, w.English,
			func(x content.VocabItem) string { return x.English }, OptionCount-1)
		if err != nil {
			return nil, fmt.Errorf("%w: vocabulary distractors for %s: %v", ErrInsufficientContent, w.Korean, err)
		}
		opts, idx := sampling.Options(g.rnd, w.English, wrong)
		qs = append(qs, Question{
			Prompt:       w.Korean,
			Subtext:      fmt.Sprintf("(%s) — What does this mean?", w.Romanization),
			Options:      opts,
			CorrectIndex: idx,
			Explanation:  fmt.Sprintf(`%s (%s) = "%s" 🇺🇸 / "%s" 🇵🇭`, w.Korean, w.Romanization, w.English, w.Filipino),
			Tag:          "Vocab",
		})
	}
	return qs, nil
}

func (g *Generator) bankQuestions(bank []content.BankQuestion, n int) []Question {
	picked := sampling.Sample(g.rnd, bank, n)

	qs := make([]Question, 0, len(picked))
	for _, b := range picked {
		opts, idx := sampling.Reorder(g.rnd, b.Options, b.CorrectIndex)
		qs = append(qs, Question{
			Prompt:       b.Prompt,
			Subtext:      b.Subtext,
			Options:      opts,
			CorrectIndex: idx,
			Explanation:  b.Explanation,
			Tag:          b.Tag,
		})
	}
	return qs
}

// uniquePrompts drops later questions that repeat an earlier prompt.
func uniquePrompts(qs []Question) []Question {
	seen := make(map[string]bool, len(qs))
	out := qs[:0]
	for _, q := range qs {
		if seen[q.Prompt] {
			continue
		}
		seen[q.Prompt] = true
		out = append(out, q)
	}
	return out
}
