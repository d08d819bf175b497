package hangul

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzDecompose checks that every decomposed syllable composes back to itself.
func FuzzDecompose(f *testing.F) {
	f.Add("한국어")
	f.Add("읽어요")
	f.Add("hello")
	f.Add("")
	f.Add("ㄱㄴㄷ")
	f.Add("가힣")

	f.Fuzz(func(t *testing.T, input string) {
		for _, b := range DecomposeText(input) {
			r, ok := Compose(b.Lead, b.Vowel, b.Tail)
			if !ok {
				t.Fatalf("Compose(%q, %q, %q) failed", b.Lead, b.Vowel, b.Tail)
			}
			if string(r) != b.Syllable {
				t.Errorf("round trip of %q produced %q", b.Syllable, string(r))
			}
		}
	})
}

// FuzzChooseParticle checks that a chosen particle always attaches to the noun.
func FuzzChooseParticle(f *testing.F) {
	f.Add("책")
	f.Add("커피")
	f.Add("서울")
	f.Add("abc")
	f.Add("")

	f.Fuzz(func(t *testing.T, noun string) {
		if !utf8.ValidString(noun) {
			return
		}
		for _, kind := range ParticleKinds() {
			c, err := ChooseParticle(noun, kind)
			if err != nil {
				continue
			}
			if !strings.HasPrefix(c.Result, noun) || c.Particle == "" {
				t.Errorf("ChooseParticle(%q, %s) = %+v", noun, kind, c)
			}
		}
	})
}

func BenchmarkDecomposeText(b *testing.B) {
	text := strings.Repeat("저는 한국어를 공부해요. ", 20)
	b.ResetTimer()
	for b.Loop() {
		_ = DecomposeText(text)
	}
}
