//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/blog-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// EnvTestDatabaseURL points the tests at an existing database instead of
// starting a container.
const EnvTestDatabaseURL = "BLOG_TEST_DB_URL"

var (
	sharedOnce sync.Once
	sharedURL  string
	sharedErr  error
)

// GetTestDatabaseURL returns the connection string for the shared test
// database, starting a PostgreSQL container on first use when
// BLOG_TEST_DB_URL is unset. The schema is migrated once.
func GetTestDatabaseURL() (string, error) {
	sharedOnce.Do(func() {
		ctx := context.Background()

		sharedURL = os.Getenv(EnvTestDatabaseURL)
		if sharedURL == "" {
			sharedURL, sharedErr = startContainer(ctx)
			if sharedErr != nil {
				return
			}
		}

		sharedErr = migrateUp(ctx, sharedURL)
	})
	return sharedURL, sharedErr
}

func startContainer(ctx context.Context) (string, error) {
	pgContainer, err := tcpg.Run(ctx,
		"postgres:13-alpine",
		tcpg.WithDatabase("testdb"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
	}
	return connStr, nil
}

func migrateUp(ctx context.Context, dbURL string) error {
	db, err := openAndPing(ctx, dbURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return postgres.Migrate(ctx, db, "up", slog.Default())
}

func openAndPing(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// An external BLOG_TEST_DB_URL may still be starting up.
	var pingErr error
	for i := 0; i < 5; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, TestTimeout)
		pingErr = db.PingContext(pingCtx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		time.Sleep(time.Second)
	}

	_ = db.Close()
	return nil, fmt.Errorf("database ping failed: %w", pingErr)
}

// GetTestDBWithT returns a migrated database connection that is closed when
// the test finishes. The test is skipped if no database can be provided.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL, err := GetTestDatabaseURL()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	db, err := openAndPing(context.Background(), dbURL)
	require.NoError(t, err, "Failed to connect to test database")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	return db
}
