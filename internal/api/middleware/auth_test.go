package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/mocks"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_AuthenticateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		authHeader  string
		validateErr error
		claims      *auth.Claims
		expectedErr error
		expectedID  int64
	}{
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			claims:     &auth.Claims{AuthorID: 7, Username: "ada"},
			expectedID: 7,
		},
		{
			name:       "scheme is case-insensitive",
			authHeader: "bearer valid-token",
			claims:     &auth.Claims{AuthorID: 8},
			expectedID: 8,
		},
		{
			name:        "missing auth header",
			expectedErr: auth.ErrMissingToken,
		},
		{
			name:        "invalid auth format",
			authHeader:  "InvalidFormat",
			expectedErr: auth.ErrInvalidToken,
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic dXNlcjpwYXNz",
			expectedErr: auth.ErrInvalidToken,
		},
		{
			name:        "empty token",
			authHeader:  "Bearer  ",
			expectedErr: auth.ErrInvalidToken,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			expectedErr: auth.ErrExpiredToken,
		},
		{
			name:        "invalid token",
			authHeader:  "Bearer invalid-token",
			validateErr: auth.ErrInvalidToken,
			expectedErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewAuthMiddleware(&mocks.MockJWTService{
				ValidateErr: tt.validateErr,
				Claims:      tt.claims,
			})

			req := httptest.NewRequest(http.MethodPost, "/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			authed, err := m.AuthenticateRequest(req)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, authed)
				return
			}

			require.NoError(t, err)
			id, ok := GetAuthorID(authed)
			require.True(t, ok)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestAuthMiddleware_PassesTokenAndUsername(t *testing.T) {
	var seen string
	m := NewAuthMiddleware(&mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			seen = token
			return &auth.Claims{AuthorID: 3, Username: "grace"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/posts/1", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	authed, err := m.AuthenticateRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", seen)

	id, username, ok := shared.GetAuthor(authed.Context())
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, "grace", username)
}

func TestAuthMiddleware_UnexpectedValidationError(t *testing.T) {
	cause := errors.New("key store offline")
	m := NewAuthMiddleware(&mocks.MockJWTService{ValidateErr: cause})

	req := httptest.NewRequest(http.MethodDelete, "/posts/1", nil)
	req.Header.Set("Authorization", "Bearer token")

	_, err := m.AuthenticateRequest(req)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGetAuthorID_Unauthenticated(t *testing.T) {
	_, ok := GetAuthorID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
