package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/content"
	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
	"github.com/Z4rru/hangulmastery/internal/hangul"
	"github.com/Z4rru/hangulmastery/internal/sampling"
)

// ContentHandler serves the read-only learning sections
type ContentHandler struct {
	cat *content.Catalog
	rnd sampling.Rand
	now func() time.Time
}

// NewContentHandler creates a new content handler
func NewContentHandler(cat *content.Catalog, rnd sampling.Rand, now func() time.Time) *ContentHandler {
	if now == nil {
		now = time.Now
	}
	return &ContentHandler{cat: cat, rnd: rnd, now: now}
}

// Hangul returns the alphabet tables. ?category narrows the characters to
// consonant, vowel, double or compound.
func (h *ContentHandler) Hangul(c *gin.Context) {
	chars := h.cat.Characters()
	if cat := trimmedQuery(c, "category"); cat != "" {
		chars = h.cat.CharactersBy(content.CharCategory(cat))
		if chars == nil {
			respondError(c, apierrors.InvalidRequest("unknown character category: "+cat))
			return
		}
	}

	respondOK(c, gin.H{
		"characters":      chars,
		"consonant_trios": h.cat.ConsonantTrios,
		"syllable_blocks": h.cat.SyllableBlocks,
	})
}

// Syllables breaks ?text into syllable blocks.
func (h *ContentHandler) Syllables(c *gin.Context) {
	text := trimmedQuery(c, "text")
	if text == "" {
		respondError(c, apierrors.InvalidRequest("query parameter 'text' is required"))
		return
	}
	blocks := hangul.DecomposeText(text)
	if blocks == nil {
		blocks = []hangul.Block{}
	}
	respondOK(c, blocks)
}

// Grammar returns the grammar rules, optionally for one ?level.
func (h *ContentHandler) Grammar(c *gin.Context) {
	level := content.Level(trimmedQuery(c, "level"))
	if level != "" && !level.Valid() {
		respondError(c, apierrors.InvalidRequest("unknown level: "+string(level)))
		return
	}

	rules := make([]content.GrammarRule, 0, len(h.cat.GrammarRules))
	for _, r := range h.cat.GrammarRules {
		if level == "" || r.Level == level {
			rules = append(rules, r)
		}
	}
	respondOK(c, rules)
}

// Pronunciation returns the sound change rules.
func (h *ContentHandler) Pronunciation(c *gin.Context) {
	respondOK(c, h.cat.PronunciationRules)
}

// SentenceView is an exercise with its tiles scrambled and the answer held
// back.
type SentenceView struct {
	ID        int      `json:"id"`
	Words     []string `json:"words"`
	Particles []string `json:"particles"`
	Meaning   string   `json:"meaning"`
	Filipino  string   `json:"filipino"`
}

// Sentences lists the sentence builder exercises.
func (h *ContentHandler) Sentences(c *gin.Context) {
	out := make([]SentenceView, len(h.cat.SentenceExercises))
	for i, ex := range h.cat.SentenceExercises {
		out[i] = SentenceView{
			ID:        ex.ID,
			Words:     sampling.Shuffle(h.rnd, ex.Words),
			Particles: ex.Particles,
			Meaning:   ex.Meaning,
			Filipino:  ex.Filipino,
		}
	}
	respondOK(c, out)
}

// CheckSentenceRequest is the learner's tile order
type CheckSentenceRequest struct {
	Words []string `json:"words" binding:"required,min=1,dive,required"`
}

// CheckSentence reports whether the submitted tiles build the answer.
func (h *ContentHandler) CheckSentence(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, apierrors.InvalidID("exercise ID"))
		return
	}
	ex, ok := h.cat.SentenceExercise(id)
	if !ok {
		respondError(c, apierrors.NotFound("Sentence exercise"))
		return
	}

	var req CheckSentenceRequest
	if !bindJSON(c, &req) {
		return
	}

	correct := ex.CheckSentence(req.Words)
	resp := gin.H{"id": ex.ID, "correct": correct}
	if correct {
		resp["answer"] = ex.Answer
		resp["meaning"] = ex.Meaning
	}
	respondOK(c, resp)
}

// Particles picks particle forms for ?noun. Without ?kind every supported
// particle is returned.
func (h *ContentHandler) Particles(c *gin.Context) {
	noun := trimmedQuery(c, "noun")
	if noun == "" {
		respondError(c, apierrors.InvalidRequest("query parameter 'noun' is required"))
		return
	}

	kinds := hangul.ParticleKinds()
	if k := trimmedQuery(c, "kind"); k != "" {
		kinds = []hangul.ParticleKind{hangul.ParticleKind(k)}
	}

	choices := make([]hangul.Choice, 0, len(kinds))
	for _, k := range kinds {
		choice, err := hangul.ChooseParticle(noun, k)
		if err != nil {
			respondError(c, apierrors.InvalidRequest(err.Error()))
			return
		}
		choices = append(choices, choice)
	}
	respondOK(c, choices)
}

// Culture returns the culture notes and K-drama expressions.
func (h *ContentHandler) Culture(c *gin.Context) {
	respondOK(c, gin.H{
		"notes":       h.cat.CultureNotes,
		"expressions": h.cat.Expressions,
	})
}

// Wellness returns the breathing cycle, tips, affirmations, grounding
// steps and focus timer presets.
func (h *ContentHandler) Wellness(c *gin.Context) {
	respondOK(c, gin.H{
		"breathing_cycle": h.cat.BreathingCycle,
		"tips":            h.cat.WellnessTips,
		"affirmations":    h.cat.Affirmations,
		"grounding_steps": h.cat.GroundingSteps,
		"focus_presets":   h.cat.FocusPresets,
	})
}

// WordOfDay returns today's featured expression.
func (h *ContentHandler) WordOfDay(c *gin.Context) {
	now := h.now()
	respondOK(c, gin.H{
		"date": now.UTC().Format(time.DateOnly),
		"word": h.cat.WordOfDay(now),
	})
}
