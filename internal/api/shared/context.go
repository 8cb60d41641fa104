// Package shared holds the request context keys, JSON helpers, and request
// validation used by the handlers and middleware.
package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys set by the HTTP layer.
type ContextKey string

// Context keys for values carried through a request
const (
	// AuthorIDContextKey holds the authenticated author's id (int64).
	AuthorIDContextKey ContextKey = "authorID"

	// UsernameContextKey holds the authenticated author's username claim, if any.
	UsernameContextKey ContextKey = "username"

	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// newTraceID returns a random 32-character hex string.
func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithAuthor stores the authenticated principal in the context.
func WithAuthor(ctx context.Context, authorID int64, username string) context.Context {
	ctx = context.WithValue(ctx, AuthorIDContextKey, authorID)
	return context.WithValue(ctx, UsernameContextKey, username)
}

// GetAuthor returns the authenticated principal. ok is false when the
// request was not authenticated.
func GetAuthor(ctx context.Context) (authorID int64, username string, ok bool) {
	authorID, ok = ctx.Value(AuthorIDContextKey).(int64)
	if !ok || authorID <= 0 {
		return 0, "", false
	}
	username, _ = ctx.Value(UsernameContextKey).(string)
	return authorID, username, true
}
