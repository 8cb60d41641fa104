package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/badgerdb"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/phrazzld/blog-api/internal/store"
)

// openPostgres establishes a connection to the database and configures the
// connection pool.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established", "driver", config.DriverPostgres)
	return db, nil
}

// setupRepository opens the configured storage backend. PostgreSQL is
// migrated to the latest schema before use.
func (app *application) setupRepository(ctx context.Context) (store.Repository, error) {
	cfg := app.config.Database

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg, app.logger)
		if err != nil {
			return nil, err
		}
		app.sqlDB = db
		if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
			return nil, err
		}
		return postgres.NewRepository(db, app.logger), nil

	case config.DriverBadger:
		db, err := badgerdb.Open(cfg.BadgerPath, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		app.badgerDB = db
		app.logger.Info("Database connection established",
			"driver", config.DriverBadger,
			"in_memory", cfg.BadgerPath == config.BadgerInMemory)
		return badgerdb.NewRepository(db, app.logger), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// setupCache opens the response cache store when caching is enabled.
func (app *application) setupCache() (*badger.DB, error) {
	path := app.config.Cache.Path
	if path == "" {
		path = badgerdb.InMemory
	}
	db, err := badgerdb.Open(path, app.logger.With("component", "cache_store"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	return db, nil
}
