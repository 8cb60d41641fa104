package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

const postColumns = `id, title, subtitle, content, author_id, created_at, updated_at`

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Create implements store.PostStore.Create.
// Returns store.ErrAuthorNotFound if the author row does not exist.
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO posts (title, subtitle, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		nullableString(post.Subtitle),
		post.Content,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("post references unknown author", slog.Int64("author_id", post.AuthorID))
			return fmt.Errorf("%w: id %d", store.ErrAuthorNotFound, post.AuthorID)
		}
		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.Int64("author_id", post.AuthorID))
		return MapError(err)
	}

	log.Debug("post created", slog.Int64("post_id", post.ID), slog.Int64("author_id", post.AuthorID))
	return nil
}

// GetByID implements store.PostStore.GetByID.
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return nil, MapError(err)
	}

	return post, nil
}

// List implements store.PostStore.List.
func (s *PostgresPostStore) List(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	dir := orderDirection(opts.Sort)
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		WHERE ($1 = '' OR strpos(content, $1) > 0)
		ORDER BY updated_at %s, id %s
		LIMIT $2 OFFSET $3
	`, postColumns, dir, dir)

	rows, err := s.db.QueryContext(ctx, query, opts.Filter, limitArg(opts), opts.Offset())
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			log.Error("failed to scan post row", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning post rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

// Update implements store.PostStore.Update.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return err
	}

	query := `
		UPDATE posts
		SET title = $1, subtitle = $2, content = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		post.Title,
		nullableString(post.Subtitle),
		post.Content,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		log.Error("failed to update post", slog.String("error", err.Error()), slog.Int64("post_id", post.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		log.Debug("post not updated", slog.String("error", err.Error()), slog.Int64("post_id", post.ID))
		return err
	}

	log.Debug("post updated", slog.Int64("post_id", post.ID))
	return nil
}

// Delete implements store.PostStore.Delete.
func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete post", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		log.Debug("post not deleted", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return err
	}

	log.Debug("post deleted", slog.Int64("post_id", id))
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	var subtitle sql.NullString
	err := row.Scan(
		&post.ID,
		&post.Title,
		&subtitle,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if subtitle.Valid {
		post.Subtitle = &subtitle.String
	}
	return &post, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// limitArg yields NULL for unbounded listings; LIMIT NULL returns every row.
func limitArg(opts domain.ListOptions) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(opts.Limit), Valid: opts.Bounded()}
}

func orderDirection(order domain.SortOrder) string {
	if order == domain.SortAsc {
		return "ASC"
	}
	return "DESC"
}
