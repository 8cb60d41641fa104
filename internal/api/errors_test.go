package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "nil error", err: nil, expectedStatus: http.StatusInternalServerError},
		{name: "missing token", err: auth.ErrMissingToken, expectedStatus: http.StatusUnauthorized},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrInvalidToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{name: "expired token", err: auth.ErrExpiredToken, expectedStatus: http.StatusUnauthorized},
		{name: "no principal", err: domain.ErrUnauthorized, expectedStatus: http.StatusUnauthorized},
		{name: "service not found", err: service.ErrPostNotFound, expectedStatus: http.StatusNotFound},
		{name: "store not found", err: store.ErrPostNotFound, expectedStatus: http.StatusNotFound},
		{name: "named not found", err: &postNotFoundError{id: 3}, expectedStatus: http.StatusNotFound},
		{
			name:           "validation error",
			err:            domain.NewValidationError(domain.MsgPostMissingTitle),
			expectedStatus: http.StatusBadRequest,
		},
		{name: "invalid entity", err: store.ErrInvalidEntity, expectedStatus: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("disk on fire"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected []string
	}{
		{name: "nil", err: nil, expected: []string{MsgUnexpected}},
		{
			name:     "validation messages are passed through",
			err:      domain.NewValidationError(domain.MsgPostMissingTitle, domain.MsgPostMissingContent),
			expected: []string{domain.MsgPostMissingTitle, domain.MsgPostMissingContent},
		},
		{name: "named missing post", err: &postNotFoundError{id: 12}, expected: []string{"Post of id 12 not found"}},
		{name: "missing post", err: service.ErrPostNotFound, expected: []string{"Post not found"}},
		{name: "missing token", err: auth.ErrMissingToken, expected: []string{"Authorization header required"}},
		{name: "expired token", err: auth.ErrExpiredToken, expected: []string{"Token expired"}},
		{name: "invalid token", err: auth.ErrInvalidToken, expected: []string{"Invalid token"}},
		{
			name:     "internal details are hidden",
			err:      errors.New("pq: relation \"posts\" does not exist"),
			expected: []string{MsgUnexpected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessages(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/posts/9", nil)
	w := httptest.NewRecorder()

	HandleAPIError(w, req, &postNotFoundError{id: 9})

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Post of id 9 not found"}, resp.Errors.Messages)
	assert.Equal(t, http.StatusNotFound, resp.Errors.StatusCode)
}
