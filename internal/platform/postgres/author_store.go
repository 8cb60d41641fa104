package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// PostgresAuthorStore implements store.AuthorStore.
type PostgresAuthorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuthorStore creates a new PostgreSQL implementation of the AuthorStore interface.
func NewPostgresAuthorStore(db store.DBTX, logger *slog.Logger) *PostgresAuthorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuthorStore{
		db:     db,
		logger: logger.With(slog.String("component", "author_store")),
	}
}

var _ store.AuthorStore = (*PostgresAuthorStore)(nil)

// Ensure implements store.AuthorStore.Ensure.
func (s *PostgresAuthorStore) Ensure(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO authors (id, username, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, author.ID, author.Username, author.CreatedAt); err != nil {
		log.Error("failed to ensure author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return MapError(err)
	}

	stored, err := s.GetByID(ctx, author.ID)
	if err != nil {
		return err
	}
	*author = *stored
	return nil
}

// GetByID implements store.AuthorStore.GetByID.
func (s *PostgresAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var author domain.Author
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, created_at FROM authors WHERE id = $1`, id,
	).Scan(&author.ID, &author.Username, &author.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author", slog.String("error", err.Error()), slog.Int64("author_id", id))
		return nil, MapError(err)
	}

	return &author, nil
}
