package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/blog-api/internal/platform/logger"
)

// HeaderName reports whether a response was served from the cache.
const HeaderName = "X-Cache"

// KeyFunc derives the cache key of a request.
type KeyFunc func(r *http.Request) string

// TagFunc derives the invalidation tags of a response. It is called before
// the handler runs and relies on route parameters already being resolved, so
// the middleware belongs on routes, not on the top-level mux.
type TagFunc func(r *http.Request) []string

// DefaultKey hashes the request URL including its query string.
func DefaultKey(r *http.Request) string {
	hash := sha256.Sum256([]byte(r.URL.String()))
	return hex.EncodeToString(hash[:])
}

type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches successful GET responses for ttl. Cache errors are
// logged and the request is served normally.
func Middleware(svc Service, ttl time.Duration, tags TagFunc, key KeyFunc) func(http.Handler) http.Handler {
	if key == nil {
		key = DefaultKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := logger.FromContextOrDefault(ctx, slog.Default())
			cacheKey := key(r)

			cached, err := svc.Get(ctx, cacheKey)
			if err != nil {
				log.Warn("response cache unavailable", slog.String("error", err.Error()))
			}
			if err == nil && cached != nil {
				w.Header().Set(HeaderName, "HIT")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(cached)
				return
			}

			// Generations are read before the handler so a write that lands
			// while the response renders keeps the stale body out of the cache.
			var entryTags []string
			if tags != nil {
				entryTags = tags(r)
			}
			snap, snapErr := svc.Snapshot(ctx, entryTags...)
			if snapErr != nil {
				log.Warn("response cache unavailable", slog.String("error", snapErr.Error()))
			}

			w.Header().Set(HeaderName, "MISS")
			rec := &recorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK || snapErr != nil {
				return
			}
			// The request context may already be cancelled once the response is written.
			storeCtx := logger.WithContext(context.WithoutCancel(ctx), log)
			if _, err := svc.SetIfCurrent(storeCtx, cacheKey, rec.body.Bytes(), snap, ttl); err != nil {
				log.Warn("failed to cache response", slog.String("error", err.Error()))
			}
		})
	}
}
