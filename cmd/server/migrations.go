package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/platform/postgres"
)

// handleMigrations runs a goose command against the configured PostgreSQL
// database. The Badger backend has no schema to migrate.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require database.driver=%s, got %q",
			config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := openPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database after migration", "error", cerr)
		}
	}()

	logger.Info("running database migration", "command", command)
	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return err
	}
	logger.Info("database migration finished", "command", command)
	return nil
}
