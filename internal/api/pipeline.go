package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
)

// Stage is one check run before a handler. It returns the request to pass
// on, usually with something added to its context, or an error that ends
// the request.
type Stage func(r *http.Request) (*http.Request, error)

// HandlerFunc is a handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Pipeline runs stages in order and then h. The first error from a stage or
// from h is written with HandleAPIError.
func Pipeline(h HandlerFunc, stages ...Stage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, stage := range stages {
			next, err := stage(r)
			if err != nil {
				HandleAPIError(w, r, err)
				return
			}
			r = next
		}
		if err := h(w, r); err != nil {
			HandleAPIError(w, r, err)
		}
	}
}

type pipelineKey int

const (
	bodyKey pipelineKey = iota
	postIDKey
)

// Authenticate requires a valid bearer token.
func Authenticate(m *middleware.AuthMiddleware) Stage {
	return m.AuthenticateRequest
}

// PostID parses the post id route parameter.
func PostID() Stage {
	return func(r *http.Request) (*http.Request, error) {
		id, err := parsePostID(r)
		if err != nil {
			return nil, err
		}
		return r.WithContext(context.WithValue(r.Context(), postIDKey, id)), nil
	}
}

// DecodeBody decodes the JSON body into a new T.
func DecodeBody[T any]() Stage {
	return func(r *http.Request) (*http.Request, error) {
		body := new(T)
		if err := shared.DecodeJSON(r, body); err != nil {
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Debug("failed to decode request body", slog.String("error", err.Error()))
			return nil, domain.NewValidationError(MsgInvalidRequestFormat)
		}
		return r.WithContext(context.WithValue(r.Context(), bodyKey, body)), nil
	}
}

// ValidateBody validates the body decoded by DecodeBody.
func ValidateBody() Stage {
	return func(r *http.Request) (*http.Request, error) {
		body := r.Context().Value(bodyKey)
		if body == nil {
			return nil, domain.NewValidationError(MsgInvalidRequestFormat)
		}
		if err := shared.ValidateRequest(body); err != nil {
			return nil, err
		}
		return r, nil
	}
}

// PostExists requires the post named by the PostID stage to exist.
func PostExists(svc service.PostService) Stage {
	return func(r *http.Request) (*http.Request, error) {
		id := postIDFrom(r)
		ok, err := svc.PostExists(r.Context(), id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &postNotFoundError{id: id}
		}
		return r, nil
	}
}

// bodyFrom returns the body decoded by DecodeBody[T].
func bodyFrom[T any](r *http.Request) *T {
	body, _ := r.Context().Value(bodyKey).(*T)
	return body
}

// postIDFrom returns the id parsed by the PostID stage.
func postIDFrom(r *http.Request) int64 {
	id, _ := r.Context().Value(postIDKey).(int64)
	return id
}
