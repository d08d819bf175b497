package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/loader"
	"github.com/Z4rru/hangulmastery/internal/sampling"
)

func testCatalog(t testing.TB) *content.Catalog {
	t.Helper()
	cat, err := loader.Embedded().LoadAll()
	require.NoError(t, err)
	return cat
}

func assertWellFormed(t *testing.T, qs []Question) {
	t.Helper()
	prompts := make(map[string]bool)
	for _, q := range qs {
		require.Len(t, q.Options, OptionCount, q.Prompt)
		require.GreaterOrEqual(t, q.CorrectIndex, 0)
		require.Less(t, q.CorrectIndex, OptionCount)
		assert.NotEmpty(t, q.Explanation)
		assert.NotEmpty(t, q.Tag)

		seen := make(map[string]bool)
		for _, o := range q.Options {
			assert.False(t, seen[o], "duplicate option %q in %q", o, q.Prompt)
			seen[o] = true
		}

		assert.False(t, prompts[q.Prompt], "duplicate prompt %q", q.Prompt)
		prompts[q.Prompt] = true
	}
}

func TestGenerateSizes(t *testing.T) {
	gen := NewGenerator(testCatalog(t), sampling.NewRand(1))

	tests := []struct {
		mode Mode
		want int
	}{
		{ModeHangul, SingleSize},
		{ModeVocab, SingleSize},
		{ModeParticles, ParticleSize},
		{ModeSentences, SentenceSize},
		{ModeMixed, MixedSize},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			for range 20 {
				qs, err := gen.Generate(tt.mode)
				require.NoError(t, err)
				assert.Len(t, qs, tt.want)
				assertWellFormed(t, qs)
			}
		})
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	gen := NewGenerator(testCatalog(t), sampling.NewRand(1))
	_, err := gen.Generate("kanji")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestHangulQuestionsAnswerMatchesCharacter(t *testing.T) {
	cat := testCatalog(t)
	gen := NewGenerator(cat, sampling.NewRand(2))

	roman := make(map[string]string)
	for _, c := range cat.Characters() {
		roman[c.Char] = c.Romanization
	}

	qs, err := gen.Generate(ModeHangul)
	require.NoError(t, err)
	for _, q := range qs {
		assert.Equal(t, "Hangul", q.Tag)
		assert.Equal(t, roman[q.Prompt], q.CorrectAnswer())
		assert.Contains(t, q.Explanation, q.Prompt)
	}
}

func TestVocabQuestionsAnswerMatchesWord(t *testing.T) {
	cat := testCatalog(t)
	gen := NewGenerator(cat, sampling.NewRand(3))

	english := make(map[string]string)
	for _, v := range cat.Vocabulary() {
		english[v.Korean] = v.English
	}

	qs, err := gen.Generate(ModeVocab)
	require.NoError(t, err)
	for _, q := range qs {
		assert.Equal(t, "Vocab", q.Tag)
		assert.Equal(t, english[q.Prompt], q.CorrectAnswer())
		assert.Contains(t, q.Subtext, "What does this mean?")
	}
}

func TestBankQuestionsKeepAuthoredAnswer(t *testing.T) {
	cat := testCatalog(t)
	gen := NewGenerator(cat, sampling.NewRand(4))

	answers := make(map[string]string)
	for _, b := range cat.ParticleBank {
		answers[b.Prompt] = b.Options[b.CorrectIndex]
	}

	for range 20 {
		qs, err := gen.Generate(ModeParticles)
		require.NoError(t, err)
		for _, q := range qs {
			assert.Equal(t, answers[q.Prompt], q.CorrectAnswer())
		}
	}
}

func TestMixedComposition(t *testing.T) {
	gen := NewGenerator(testCatalog(t), sampling.NewRand(5))

	qs, err := gen.Generate(ModeMixed)
	require.NoError(t, err)

	tags := make(map[string]int)
	for _, q := range qs {
		tags[q.Tag]++
	}
	assert.Equal(t, MixedHangul, tags["Hangul"])
	assert.Equal(t, MixedVocab, tags["Vocab"])
}

func TestGenerateInsufficientContent(t *testing.T) {
	cat := &content.Catalog{
		Consonants: []content.Character{
			{Char: "ㄱ", Romanization: "g/k"},
			{Char: "ㄴ", Romanization: "n"},
			{Char: "ㄲ", Romanization: "n"},
		},
	}
	cat.Index()

	gen := NewGenerator(cat, sampling.NewRand(1))
	_, err := gen.Generate(ModeHangul)
	assert.ErrorIs(t, err, ErrInsufficientContent)
}

func TestGenerateCapsSmallTables(t *testing.T) {
	cat := &content.Catalog{
		Vowels: []content.Character{
			{Char: "ㅏ", Romanization: "a"},
			{Char: "ㅓ", Romanization: "eo"},
			{Char: "ㅗ", Romanization: "o"},
			{Char: "ㅜ", Romanization: "u"},
			{Char: "ㅡ", Romanization: "eu"},
		},
	}
	cat.Index()

	gen := NewGenerator(cat, sampling.NewRand(1))
	qs, err := gen.Generate(ModeHangul)
	require.NoError(t, err)
	assert.Len(t, qs, 5)
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(string(m.Mode))
		require.NoError(t, err)
		assert.Equal(t, m.Mode, got)
	}
	_, err := ParseMode("")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func BenchmarkGenerateMixed(b *testing.B) {
	gen := NewGenerator(testCatalog(b), sampling.NewRand(1))
	for b.Loop() {
		if _, err := gen.Generate(ModeMixed); err != nil {
			b.Fatal(err)
		}
	}
}
