package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/content"
	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/sampling"
)

// ProgressHandler serves the home dashboard and per-learner progress
type ProgressHandler struct {
	cat   *content.Catalog
	store *progress.Store
	rnd   sampling.Rand
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(cat *content.Catalog, store *progress.Store, rnd sampling.Rand) *ProgressHandler {
	return &ProgressHandler{cat: cat, store: store, rnd: rnd}
}

// SectionStatus is a section card with the learner's visited flag.
type SectionStatus struct {
	content.Section
	Visited bool `json:"visited"`
}

func (h *ProgressHandler) sections(rec progress.Record) []SectionStatus {
	out := make([]SectionStatus, len(h.cat.Sections))
	for i, s := range h.cat.Sections {
		out[i] = SectionStatus{Section: s, Visited: rec.Visited[s.Key]}
	}
	return out
}

// Home builds the dashboard: section cards, explored count, a random
// proverb, quiz statistics and achievements.
func (h *ProgressHandler) Home(c *gin.Context) {
	snap := h.store.Snapshot(c.Request.Context(), learner(c))
	keys := h.store.Sections()

	resp := gin.H{
		"sections":       h.sections(snap.Progress),
		"explored":       snap.Progress.Explored(keys),
		"total_sections": len(keys),
		"total_visits":   snap.Progress.TotalVisits,
		"stats":          snap.Stats,
		"mastered_count": len(snap.Mastered),
		"achievements":   progress.Evaluate(snap, keys, h.cat.Achievements),
	}
	if len(h.cat.Proverbs) > 0 {
		resp["proverb"] = h.cat.Proverbs[h.rnd.IntN(len(h.cat.Proverbs))]
	}
	respondOK(c, resp)
}

// Sections lists the learning sections with visited flags.
func (h *ProgressHandler) Sections(c *gin.Context) {
	rec := h.store.LoadProgress(c.Request.Context(), learner(c))
	respondOK(c, h.sections(rec))
}

// Progress returns everything stored for the learner.
func (h *ProgressHandler) Progress(c *gin.Context) {
	snap := h.store.Snapshot(c.Request.Context(), learner(c))
	respondOK(c, gin.H{
		"learner_id": learner(c),
		"explored":   snap.Progress.Explored(h.store.Sections()),
		"snapshot":   snap,
	})
}

// VisitRequest names the section being opened
type VisitRequest struct {
	Section string `json:"section" binding:"required"`
}

// RecordVisit marks a section as visited. Home is accepted but not
// counted; unknown sections are rejected.
func (h *ProgressHandler) RecordVisit(c *gin.Context) {
	var req VisitRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Section != content.SectionHome && !h.cat.HasSection(req.Section) {
		respondError(c, apierrors.InvalidRequest("unknown section: "+req.Section))
		return
	}

	rec := h.store.RecordVisit(c.Request.Context(), learner(c), req.Section)
	respondOK(c, gin.H{
		"progress": rec,
		"explored": rec.Explored(h.store.Sections()),
	})
}

// QuizStats returns the learner's accumulated quiz statistics.
func (h *ProgressHandler) QuizStats(c *gin.Context) {
	respondOK(c, h.store.LoadQuizStats(c.Request.Context(), learner(c)))
}

// Achievements lists every badge with its unlocked flag.
func (h *ProgressHandler) Achievements(c *gin.Context) {
	list := h.store.Achievements(c.Request.Context(), learner(c), h.cat.Achievements)
	unlocked := 0
	for _, a := range list {
		if a.Unlocked {
			unlocked++
		}
	}
	respondOK(c, gin.H{
		"achievements": list,
		"unlocked":     unlocked,
		"total":        len(list),
	})
}
