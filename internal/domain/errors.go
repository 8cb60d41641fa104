package domain

import (
	"errors"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// ValidationError wraps it and carries the client-facing messages.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation requires an authenticated author.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// Client-facing validation messages.
const (
	MsgPostMissingTitle   = "Post is missing a title"
	MsgPostMissingContent = "Post is missing text content"
	MsgCommentEmpty       = "Comment must not be empty"
)

// ValidationError reports every failed check of a single validation pass.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError with the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// validationResult converts collected messages to an error, or nil when there are none.
func validationResult(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return NewValidationError(messages...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
