package handler

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/database"
	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
	"github.com/Z4rru/hangulmastery/internal/progress"
	"github.com/Z4rru/hangulmastery/internal/search"
)

// VocabularyHandler handles vocabulary listing, search and mastery
type VocabularyHandler struct {
	cat    *content.Catalog
	repo   database.RepositoryInterface
	search *search.Engine
	store  *progress.Store
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(cat *content.Catalog, repo database.RepositoryInterface, engine *search.Engine, store *progress.Store) *VocabularyHandler {
	return &VocabularyHandler{cat: cat, repo: repo, search: engine, store: store}
}

// CategorySummary is a vocabulary category with word and mastery counts.
type CategorySummary struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Emoji    string `json:"emoji"`
	Words    int    `json:"words"`
	Mastered int    `json:"mastered"`
}

// Categories lists the vocabulary categories for the learner.
func (h *VocabularyHandler) Categories(c *gin.Context) {
	mastered := h.store.LoadMastered(c.Request.Context(), learner(c))

	out := make([]CategorySummary, len(h.cat.VocabCategories))
	for i, vc := range h.cat.VocabCategories {
		s := CategorySummary{Key: vc.Key, Label: vc.Label, Emoji: vc.Emoji, Words: len(vc.Items)}
		for _, item := range vc.Items {
			if _, ok := slices.BinarySearch(mastered, item.Korean); ok {
				s.Mastered++
			}
		}
		out[i] = s
	}
	respondOK(c, out)
}

// filters validates the shared ?category and ?level parameters.
func (h *VocabularyHandler) filters(c *gin.Context) (category, level string, ok bool) {
	category = trimmedQuery(c, "category")
	if category != "" {
		if _, found := h.cat.Category(category); !found {
			respondError(c, apierrors.NotFound("Vocabulary category"))
			return "", "", false
		}
	}
	level = trimmedQuery(c, "level")
	if level != "" && !content.Level(level).Valid() {
		respondError(c, apierrors.InvalidRequest("unknown level: "+level))
		return "", "", false
	}
	return category, level, true
}

// List returns a page of vocabulary filtered by ?category and ?level.
func (h *VocabularyHandler) List(c *gin.Context) {
	category, level, ok := h.filters(c)
	if !ok {
		return
	}
	p := ParsePagination(c)

	words, total, err := h.repo.ListVocabulary(category, level, p.PageSize, p.Offset())
	if err != nil {
		_ = c.Error(err)
		respondError(c, apierrors.Internal("failed to retrieve vocabulary"))
		return
	}
	c.JSON(http.StatusOK, NewPaginationResponse(words, p, total))
}

// Search matches ?q against the headword, romanization, English and
// Filipino. ?type restricts it to one of them.
func (h *VocabularyHandler) Search(c *gin.Context) {
	query := trimmedQuery(c, "q")
	if query == "" {
		respondError(c, apierrors.InvalidRequest("query parameter 'q' is required"))
		return
	}
	searchType, err := search.ParseSearchType(c.Query("type"))
	if err != nil {
		respondError(c, apierrors.InvalidRequest(err.Error()))
		return
	}
	category, level, ok := h.filters(c)
	if !ok {
		return
	}
	p := ParsePagination(c)

	result, err := h.search.Search(search.SearchParams{
		Query:      query,
		SearchType: searchType,
		Category:   category,
		Level:      level,
		Page:       p.Page,
		PageSize:   p.PageSize,
	})
	if err != nil {
		_ = c.Error(err)
		respondError(c, apierrors.Internal("search failed"))
		return
	}
	c.JSON(http.StatusOK, NewPaginationResponse(result.Words, p, result.TotalCount))
}

// Word looks up one headword.
func (h *VocabularyHandler) Word(c *gin.Context) {
	w, ok := h.lookup(c, c.Param("korean"))
	if !ok {
		return
	}
	mastered := h.store.LoadMastered(c.Request.Context(), learner(c))
	_, isMastered := slices.BinarySearch(mastered, w.Korean)
	respondOK(c, gin.H{"word": w, "mastered": isMastered})
}

func (h *VocabularyHandler) lookup(c *gin.Context, korean string) (*database.VocabWord, bool) {
	w, err := h.repo.GetVocabByKorean(korean)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, apierrors.NotFound("Word"))
		return nil, false
	case err != nil:
		_ = c.Error(err)
		respondError(c, apierrors.Internal("failed to retrieve word"))
		return nil, false
	}
	return w, true
}

// Mastered lists the learner's mastered headwords.
func (h *VocabularyHandler) Mastered(c *gin.Context) {
	words := h.store.LoadMastered(c.Request.Context(), learner(c))
	respondOK(c, gin.H{"words": words, "count": len(words)})
}

// MasteredRequest names the headword to toggle
type MasteredRequest struct {
	Word string `json:"word" binding:"required"`
}

// ToggleMastered flips a headword in the learner's mastered set.
func (h *VocabularyHandler) ToggleMastered(c *gin.Context) {
	var req MasteredRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, ok := h.lookup(c, req.Word); !ok {
		return
	}

	words, now := h.store.ToggleMastered(c.Request.Context(), learner(c), req.Word)
	respondOK(c, gin.H{
		"word":     req.Word,
		"mastered": now,
		"words":    words,
		"count":    len(words),
	})
}
