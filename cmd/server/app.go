package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/cache"
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/events"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/service"
	"github.com/phrazzld/blog-api/internal/service/auth"
	"github.com/phrazzld/blog-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Storage handles; only the one matching the configured driver is set.
	sqlDB    *sql.DB
	badgerDB *badger.DB
	cacheDB  *badger.DB

	repo store.Repository

	jwtService  auth.JWTService
	postService service.PostService
	cache       cache.Service

	eventEmitter *events.InMemoryEventEmitter
}

// newApplication creates a new application instance with all dependencies
// initialized. On failure every resource opened so far is released.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}
	if err := app.init(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	logger.Info("Application initialized successfully")
	return app, nil
}

func (app *application) init(ctx context.Context) error {
	cfg, logger := app.config, app.logger

	var err error

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.repo, err = app.setupRepository(ctx)
	if err != nil {
		return err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(newEventLogHandler(logger))

	if cfg.Cache.Enabled {
		app.cacheDB, err = app.setupCache()
		if err != nil {
			return err
		}
		app.cache = cache.NewBadgerService(app.cacheDB, logger)
		app.eventEmitter.RegisterHandler(cache.NewInvalidator(app.cache, logger))
		logger.Info("Response cache enabled", "ttl", cfg.Cache.TTL)
	}

	app.postService, err = service.NewPostService(app.repo, app.eventEmitter, logger)
	if err != nil {
		return fmt.Errorf("failed to create post service: %w", err)
	}
	return nil
}

// newEventLogHandler records every committed write at DEBUG level.
func newEventLogHandler(base *slog.Logger) events.EventHandler {
	base = base.With("component", "event_log")
	return events.HandlerFunc(func(ctx context.Context, event *events.Event) error {
		logger.FromContextOrDefault(ctx, base).Debug("post change committed",
			"event_id", event.ID,
			"event_type", event.Type,
			"post_id", event.PostID)
		return nil
	})
}

// Run serves requests on the configured runtime until ctx is cancelled or a
// shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	var err error
	switch app.config.Server.Runtime {
	case config.RuntimeLambda:
		err = app.startLambda(ctx, router)
	default:
		err = app.startHTTPServer(ctx, router)
	}
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.cacheDB != nil {
		if err := app.cacheDB.Close(); err != nil {
			app.logger.Error("Error closing cache store", "error", err)
		}
		app.cacheDB = nil
	}
	if app.badgerDB != nil {
		if err := app.badgerDB.Close(); err != nil {
			app.logger.Error("Error closing badger store", "error", err)
		}
		app.badgerDB = nil
	}
	if app.sqlDB != nil {
		app.logger.Info("Closing database connection")
		if err := app.sqlDB.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.sqlDB = nil
	}
}
