package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret:            "test-secret-that-is-at-least-32-characters-long",
		TokenLifetimeMinutes: 60,
	}

	var out bytes.Buffer
	require.NoError(t, generate(cfg, 7, "alice", 90*time.Second, &out))

	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)

	jwtService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AuthorID)
	assert.Equal(t, "alice", claims.Username)
}

func TestGenerateRejectsWeakSecret(t *testing.T) {
	var out bytes.Buffer
	err := generate(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 5}, 1, "", 0, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunRequiresAuthorID(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-username", "alice"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-author-id")
}
