package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/blog-api/internal/api"
	apiMiddleware "github.com/phrazzld/blog-api/internal/api/middleware"
	"github.com/phrazzld/blog-api/internal/cache"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	postHandler := api.NewPostHandler(app.postService, authMiddleware, app.logger)

	r.Route(app.config.Server.BasePath, func(r chi.Router) {
		reads := r.With(app.cacheMiddleware()...)

		reads.Get("/", postHandler.ListPosts())
		reads.Get("/{"+api.PostIDParam+"}", postHandler.GetPost())
		reads.Get("/{"+api.PostIDParam+"}/comment", postHandler.ListComments())

		r.Post("/", postHandler.CreatePost())
		r.Put("/{"+api.PostIDParam+"}", postHandler.UpdatePost())
		r.Delete("/{"+api.PostIDParam+"}", postHandler.DeletePost())
		r.Post("/{"+api.PostIDParam+"}/comment", postHandler.CreateComment())
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// cacheMiddleware returns the response cache for read routes, or nothing
// when caching is disabled.
func (app *application) cacheMiddleware() []func(http.Handler) http.Handler {
	if app.cache == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{
		cache.Middleware(app.cache, app.config.Cache.TTL, responseTags, cache.DefaultKey),
	}
}

// responseTags tags listings with the posts tag and single-post responses
// with the tag of that post as well.
func responseTags(r *http.Request) []string {
	tags := []string{cache.TagPosts}
	if id, err := parsePositiveID(chi.URLParam(r, api.PostIDParam)); err == nil {
		tags = append(tags, cache.PostTag(id))
	}
	return tags
}

// parsePositiveID parses a route id, rejecting anything but a positive integer.
func parsePositiveID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id %d is not positive", id)
	}
	return id, nil
}
