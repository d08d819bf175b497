// Package errors provides standardized error types for the API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/Z4rru/hangulmastery/internal/quiz"
)

// Code represents an API error code.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidID         Code = "INVALID_ID"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeInternal          Code = "INTERNAL_ERROR"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeUnavailable       Code = "CONTENT_UNAVAILABLE"
)

// APIError represents a structured API error.
type APIError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &APIError{Code: CodeNotFound, Message: "Resource not found", HTTPStatus: http.StatusNotFound}
	ErrInternal       = &APIError{Code: CodeInternal, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError}
	ErrInvalidRequest = &APIError{Code: CodeInvalidRequest, Message: "Invalid request", HTTPStatus: http.StatusBadRequest}
	ErrRateLimited    = &APIError{Code: CodeRateLimited, Message: "Rate limit exceeded", HTTPStatus: http.StatusTooManyRequests}
)

// NotFound creates a not found error for a named resource.
func NotFound(resource string) *APIError {
	return &APIError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// InvalidID reports a malformed path or header identifier.
func InvalidID(paramName string) *APIError {
	return &APIError{
		Code:       CodeInvalidID,
		Message:    fmt.Sprintf("Invalid %s", paramName),
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidRequest creates a bad request error with a custom message.
func InvalidRequest(message string) *APIError {
	return &APIError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidTransition reports an action not allowed in the current state.
func InvalidTransition(message string) *APIError {
	return &APIError{
		Code:       CodeInvalidTransition,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// Internal creates an internal error.
func Internal(message string) *APIError {
	if message == "" {
		message = "Internal server error"
	}
	return &APIError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// FromDomain maps quiz errors to API errors. Unknown errors
// become a generic internal error so details never leak.
func FromDomain(err error) *APIError {
	var apiErr *APIError
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &apiErr):
		return apiErr
	case stderrors.Is(err, quiz.ErrSessionNotFound):
		return NotFound("Quiz session")
	case stderrors.Is(err, quiz.ErrUnknownMode),
		stderrors.Is(err, quiz.ErrInvalidOption):
		return InvalidRequest(err.Error())
	case stderrors.Is(err, quiz.ErrInvalidTransition):
		return InvalidTransition(err.Error())
	case stderrors.Is(err, quiz.ErrInsufficientContent):
		return &APIError{
			Code:       CodeUnavailable,
			Message:    "Not enough content to build this quiz",
			HTTPStatus: http.StatusServiceUnavailable,
		}
	}
	return ErrInternal
}
