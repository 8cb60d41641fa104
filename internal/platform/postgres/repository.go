package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/blog-api/internal/store"
)

// Repository is the PostgreSQL store.Repository. It hands out stores bound
// either to the connection pool or to one open transaction.
type Repository struct {
	db     *sql.DB
	conn   store.DBTX
	logger *slog.Logger
}

// NewRepository creates a Repository backed by db.
func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, conn: db, logger: logger}
}

var _ store.Repository = (*Repository)(nil)

// WithTx returns a Repository whose stores run inside tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: r.db, conn: tx, logger: r.logger}
}

// Posts implements store.Repository.
func (r *Repository) Posts() store.PostStore {
	return NewPostgresPostStore(r.conn, r.logger)
}

// Comments implements store.Repository.
func (r *Repository) Comments() store.CommentStore {
	return NewPostgresCommentStore(r.conn, r.logger)
}

// Authors implements store.Repository.
func (r *Repository) Authors() store.AuthorStore {
	return NewPostgresAuthorStore(r.conn, r.logger)
}

// RunInTx implements store.Repository.
func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Repository) error) error {
	if _, inTx := r.conn.(*sql.Tx); inTx {
		return fn(ctx, r)
	}
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.WithTx(tx))
	})
}
