// Package apperror carries the error taxonomy for the profile
// configuration store. Every error holds an HTTP status code, a
// client-safe message and, where relevant, field-level detail. Raw
// database or redis errors are never shown to the client; they are
// wrapped here and only the generic message escapes.
package apperror

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the base type for all domain errors.
type AppError struct {
	// Code is the HTTP status code (400, 401, 404, 429, 500).
	Code int `json:"-"`

	// Type is a machine-readable classifier (e.g. "validation_error").
	Type string `json:"type"`

	// Message is safe to show to the client.
	Message string `json:"message"`

	// Details itemizes field-level validation failures.
	Details []string `json:"details,omitempty"`

	// ResetAt is set on rate-limit errors: when the caller may retry.
	ResetAt *time.Time `json:"resetAt,omitempty"`

	// Internal holds the underlying error for logging only.
	Internal error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidation creates a 400 error with per-field detail. No partial
// write may have happened when this is returned.
func NewValidation(details []string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "validation_error",
		Message: "Validation failed",
		Details: details,
	}
}

// NewBadRequest creates a 400 error without field detail.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "bad_request",
		Message: message,
	}
}

// NewUnauthorized creates a 401 error. The message stays generic so the
// client cannot tell which part of the credentials was wrong.
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "unauthorized",
		Message: message,
	}
}

// NewNotFound creates a 404 error, distinct from a store failure.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewRateLimited creates a 429 error carrying the advertised retry time.
func NewRateLimited(resetAt time.Time) *AppError {
	return &AppError{
		Code:    http.StatusTooManyRequests,
		Type:    "rate_limited",
		Message: "Too many login attempts",
		ResetAt: &resetAt,
	}
}

// NewInternal creates a 500 error. The cause is kept for logging; the
// client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "Internal server error",
		Internal: err,
	}
}
