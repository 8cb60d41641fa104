package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-that-is-at-least-32-characters-long"

// testConfig returns a configuration backed by in-memory Badger stores.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "debug",
			BasePath: "/posts",
			Runtime:  config.RuntimeHTTP,
		},
		Database: config.DatabaseConfig{
			Driver:     config.DriverBadger,
			BadgerPath: config.BadgerInMemory,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testJWTSecret,
			TokenLifetimeMinutes: 60,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
	}
}

// newTestApplication builds an application from cfg and releases it when
// the test ends.
func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.NewTestLogger()
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// bearer returns an Authorization header value for the given author.
func bearer(t *testing.T, app *application, authorID int64, username string) string {
	t.Helper()
	token, err := app.jwtService.GenerateToken(context.Background(), authorID, username)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(handler http.Handler, method, path, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
