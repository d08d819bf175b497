package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Z4rru/hangulmastery/internal/api/middleware"
	apierrors "github.com/Z4rru/hangulmastery/internal/errors"
)

// respondError sends err in the API error envelope.
func respondError(c *gin.Context, err *apierrors.APIError) {
	c.JSON(err.HTTPStatus, gin.H{"error": err})
}

// respondDomainError maps a domain error and records the cause for the
// request logger.
func respondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, apierrors.FromDomain(err))
}

// respondOK sends a JSON success response with the given data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// bindJSON decodes the request body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apierrors.InvalidRequest("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// learner returns the caller's id as resolved by the learner middleware.
func learner(c *gin.Context) string {
	return middleware.LearnerID(c)
}

func trimmedQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
