package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
)

// Client-facing messages that are not validation messages.
const (
	MsgInvalidRequestFormat = "Invalid request format"
	MsgUnexpected           = "An unexpected error occurred"
)

// postNotFoundError names the missing post in its message.
type postNotFoundError struct {
	id int64
}

func (e *postNotFoundError) Error() string {
	return fmt.Sprintf("Post of id %d not found", e.id)
}

func (e *postNotFoundError) Unwrap() error {
	return service.ErrPostNotFound
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, store.ErrPostNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessages returns the client-facing messages for err. Unknown
// errors get a generic message so internal details never reach the client.
func GetSafeErrorMessages(err error) []string {
	if err == nil {
		return []string{MsgUnexpected}
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Messages) > 0 {
		return validationErr.Messages
	}

	var notFound *postNotFoundError
	if errors.As(err, &notFound) {
		return []string{notFound.Error()}
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return []string{"Authorization header required"}
	case errors.Is(err, auth.ErrExpiredToken):
		return []string{"Token expired"}
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return []string{"Token not yet valid"}
	case errors.Is(err, auth.ErrInvalidToken):
		return []string{"Invalid token"}
	case errors.Is(err, domain.ErrUnauthorized):
		return []string{"Unauthorized"}
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, store.ErrPostNotFound):
		return []string{"Post not found"}
	case errors.Is(err, domain.ErrInvalidID):
		return []string{"Invalid id"}
	case errors.Is(err, store.ErrInvalidEntity):
		return []string{"Invalid entity data"}
	case errors.Is(err, domain.ErrValidation):
		return []string{"Validation error"}
	default:
		return []string{MsgUnexpected}
	}
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessages(err), err)
}
