package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// PostgresCommentStore implements the store.CommentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCommentStore creates a new PostgreSQL implementation of the CommentStore interface.
func NewPostgresCommentStore(db store.DBTX, logger *slog.Logger) *PostgresCommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentStore{
		db:     db,
		logger: logger.With(slog.String("component", "comment_store")),
	}
}

// Ensure PostgresCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*PostgresCommentStore)(nil)

// Create implements store.CommentStore.Create.
// The posts foreign key turns a missing parent into store.ErrPostNotFound.
func (s *PostgresCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO comments (post_id, content, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		comment.PostID,
		comment.Content,
		comment.Author,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("comment references unknown post", slog.Int64("post_id", comment.PostID))
			return fmt.Errorf("%w: id %d", store.ErrPostNotFound, comment.PostID)
		}
		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.Int64("post_id", comment.PostID))
		return MapError(err)
	}

	log.Debug("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID))
	return nil
}

// ListByPost implements store.CommentStore.ListByPost.
func (s *PostgresCommentStore) ListByPost(
	ctx context.Context,
	postID int64,
	opts domain.ListOptions,
) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	dir := orderDirection(opts.Sort)
	query := fmt.Sprintf(`
		SELECT id, post_id, content, author, created_at, updated_at
		FROM comments
		WHERE post_id = $1 AND ($2 = '' OR strpos(content, $2) > 0)
		ORDER BY updated_at %s, id %s
		LIMIT $3 OFFSET $4
	`, dir, dir)

	rows, err := s.db.QueryContext(ctx, query, postID, opts.Filter, limitArg(opts), opts.Offset())
	if err != nil {
		log.Error("failed to list comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Content, &c.Author, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan comment row", slog.String("error", err.Error()))
			return nil, err
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning comment rows", slog.String("error", err.Error()))
		return nil, err
	}

	return comments, nil
}

// DeleteByPost implements store.CommentStore.DeleteByPost.
func (s *PostgresCommentStore) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		log.Error("failed to delete comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Debug("comments deleted", slog.Int64("post_id", postID), slog.Int64("count", deleted))
	return deleted, nil
}
