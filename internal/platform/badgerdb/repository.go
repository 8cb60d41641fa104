package badgerdb

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/store"
)

// Repository is the Badger store.Repository. Outside RunInTx every store
// call runs in its own Badger transaction.
type Repository struct {
	db     *badger.DB
	txn    *badger.Txn
	logger *slog.Logger
}

// NewRepository creates a Repository backed by db.
func NewRepository(db *badger.DB, logger *slog.Logger) *Repository {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

var _ store.Repository = (*Repository)(nil)

// Posts implements store.Repository.
func (r *Repository) Posts() store.PostStore {
	return &PostStore{repo: r, logger: r.logger.With(slog.String("component", "post_store"))}
}

// Comments implements store.Repository.
func (r *Repository) Comments() store.CommentStore {
	return &CommentStore{repo: r, logger: r.logger.With(slog.String("component", "comment_store"))}
}

// Authors implements store.Repository.
func (r *Repository) Authors() store.AuthorStore {
	return &AuthorStore{repo: r, logger: r.logger.With(slog.String("component", "author_store"))}
}

// RunInTx implements store.Repository. A Badger transaction commits when fn
// returns nil and is discarded otherwise.
func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx store.Repository) error) error {
	if r.txn != nil {
		return fn(ctx, r)
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return fn(ctx, &Repository{db: r.db, txn: txn, logger: r.logger})
	})
	return mapError(err)
}

func (r *Repository) view(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return fn(r.txn)
	}
	return mapError(r.db.View(fn))
}

func (r *Repository) update(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return fn(r.txn)
	}
	return mapError(r.db.Update(fn))
}
