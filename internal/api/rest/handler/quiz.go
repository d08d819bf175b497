package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/quiz"
)

// QuizHandler drives server-side quiz sessions
type QuizHandler struct {
	registry *quiz.Registry
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(registry *quiz.Registry) *QuizHandler {
	return &QuizHandler{registry: registry}
}

// Modes lists the quiz modes for the practice menu.
func (h *QuizHandler) Modes(c *gin.Context) {
	respondOK(c, quiz.Modes())
}

// CreateSessionRequest selects the quiz mode
type CreateSessionRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// Create starts a new session.
func (h *QuizHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	mode, err := quiz.ParseMode(req.Mode)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	view, err := h.registry.Create(learner(c), mode)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+view.ID)
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// Get returns the session state.
func (h *QuizHandler) Get(c *gin.Context) {
	view, err := h.registry.Get(c.Param("id"), learner(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, view)
}

// AnswerRequest picks an option of the current question
type AnswerRequest struct {
	Option *int `json:"option" binding:"required"`
}

// Answer submits the learner's pick and reveals the correct option.
func (h *QuizHandler) Answer(c *gin.Context) {
	var req AnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	fb, view, err := h.registry.Answer(c.Request.Context(), c.Param("id"), learner(c), *req.Option)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"feedback": fb, "session": view})
}

// Next advances past a revealed question.
func (h *QuizHandler) Next(c *gin.Context) {
	h.transition(c, h.registry.Next)
}

// Restart regenerates the question set with the same mode.
func (h *QuizHandler) Restart(c *gin.Context) {
	h.transition(c, h.registry.Restart)
}

func (h *QuizHandler) transition(c *gin.Context, fn func(id, learnerID string) (quiz.SessionView, error)) {
	view, err := fn(c.Param("id"), learner(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, view)
}

// Delete ends a session.
func (h *QuizHandler) Delete(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id"), learner(c)); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

