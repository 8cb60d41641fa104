package auth

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is the signing secret used by DefaultJWTConfig.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
	}
}

// NewTestJWTService creates a JWT service with an injectable clock.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     2 * time.Minute,
	}
}

// RequireTestJWTService creates a JWT service from DefaultJWTConfig and
// fails the test on error.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeaderForTestingT returns a "Bearer <token>" header value for
// authorID signed with svc.
func GenerateAuthHeaderForTestingT(t *testing.T, svc JWTService, authorID int64) string {
	t.Helper()
	token, err := svc.GenerateToken(context.Background(), authorID, "")
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
