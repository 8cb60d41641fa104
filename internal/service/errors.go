// Package service provides application-level services for managing posts and comments.
package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Validation failures are returned as *domain.ValidationError unchanged
// 3. Unexpected errors are wrapped in PostServiceError
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPostNotFound indicates that the post does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPostNotFound = errors.New("post not found")
)

// PostServiceError wraps errors from the post service with context.
type PostServiceError struct {
	// Operation is the operation that failed (e.g., "create_post", "delete_post")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PostServiceError.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// NewPostServiceError creates a new PostServiceError.
// Known sentinel and validation errors are returned without wrapping.
func NewPostServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrPostNotFound), errors.Is(err, store.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnauthorized):
		return err
	}

	var serviceErr *PostServiceError
	if errors.As(err, &serviceErr) {
		return err
	}

	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
