package hangul

import "fmt"

// ParticleKind names a grammatical particle whose form depends on the
// final sound of the noun it attaches to.
type ParticleKind string

const (
	ParticleTopic     ParticleKind = "topic"     // 은/는
	ParticleSubject   ParticleKind = "subject"   // 이/가
	ParticleObject    ParticleKind = "object"    // 을/를
	ParticleAnd       ParticleKind = "and"       // 과/와
	ParticleDirection ParticleKind = "direction" // 으로/로
)

type particleForms struct {
	afterConsonant string
	afterVowel     string
}

var particles = map[ParticleKind]particleForms{
	ParticleTopic:     {"은", "는"},
	ParticleSubject:   {"이", "가"},
	ParticleObject:    {"을", "를"},
	ParticleAnd:       {"과", "와"},
	ParticleDirection: {"으로", "로"},
}

// ParticleKinds lists the supported kinds in a stable order.
func ParticleKinds() []ParticleKind {
	return []ParticleKind{ParticleTopic, ParticleSubject, ParticleObject, ParticleAnd, ParticleDirection}
}

// Choice is the particle picked for a noun, with the reason shown to learners.
type Choice struct {
	Noun     string       `json:"noun"`
	Kind     ParticleKind `json:"kind"`
	Particle string       `json:"particle"`
	Result   string       `json:"result"`
	Batchim  bool         `json:"batchim"`
	Reason   string       `json:"reason"`
}

// ChooseParticle selects the particle form for noun.
// Direction takes 로 after a ㄹ final as well as after a vowel.
func ChooseParticle(noun string, kind ParticleKind) (Choice, error) {
	forms, ok := particles[kind]
	if !ok {
		return Choice{}, fmt.Errorf("unknown particle kind %q", kind)
	}
	if _, ok := lastSyllable(noun); !ok {
		return Choice{}, fmt.Errorf("%q has no Hangul syllable", noun)
	}

	batchim := HasBatchim(noun)
	c := Choice{Noun: noun, Kind: kind, Batchim: batchim}

	switch {
	case kind == ParticleDirection && EndsInRieul(noun):
		c.Particle = forms.afterVowel
		c.Reason = fmt.Sprintf("%q ends in ㄹ, so use %s", noun, forms.afterVowel)
	case batchim:
		c.Particle = forms.afterConsonant
		c.Reason = fmt.Sprintf("%q ends in a consonant, so use %s", noun, forms.afterConsonant)
	default:
		c.Particle = forms.afterVowel
		c.Reason = fmt.Sprintf("%q ends in a vowel, so use %s", noun, forms.afterVowel)
	}
	c.Result = noun + c.Particle
	return c, nil
}
