package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/blog-api/internal/api/shared"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/redact"
	"github.com/phrazzld/blog-api/internal/service/auth"
)

// AuthMiddleware authenticates requests carrying a JWT bearer token.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// AuthenticateRequest validates the bearer token of r and returns r with the
// token's author in its context. Token problems are returned as auth
// sentinel errors; any other error means validation itself failed.
func (m *AuthMiddleware) AuthenticateRequest(r *http.Request) (*http.Request, error) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		log.Debug("malformed authorization header")
		return nil, auth.ErrInvalidToken
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken),
			errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrTokenNotYetValid):
			log.Debug("rejected bearer token", slog.String("error", err.Error()))
			return nil, err
		default:
			log.Error("failed to validate token", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("validate token: %w", err)
		}
	}

	ctx := shared.WithAuthor(r.Context(), claims.AuthorID, claims.Username)
	return r.WithContext(ctx), nil
}

// GetAuthorID extracts the author ID from the request context.
// Returns the author ID and a boolean indicating if it was found.
func GetAuthorID(r *http.Request) (int64, bool) {
	authorID, _, ok := shared.GetAuthor(r.Context())
	return authorID, ok
}
