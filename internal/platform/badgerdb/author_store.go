package badgerdb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// AuthorStore implements store.AuthorStore on Badger.
type AuthorStore struct {
	repo   *Repository
	logger *slog.Logger
}

var _ store.AuthorStore = (*AuthorStore)(nil)

// Ensure implements store.AuthorStore.Ensure.
func (s *AuthorStore) Ensure(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rec authorRecord
	err := s.repo.update(func(txn *badger.Txn) error {
		err := getRecord(txn, authorKey(author.ID), &rec)
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		rec = authorRecord{ID: author.ID, Username: author.Username, CreatedAt: author.CreatedAt}
		return setRecord(txn, authorKey(author.ID), &rec)
	})
	if err != nil {
		log.Error("failed to ensure author", slog.String("error", err.Error()), slog.Int64("author_id", author.ID))
		return err
	}

	author.Username = rec.Username
	author.CreatedAt = rec.CreatedAt
	return nil
}

// GetByID implements store.AuthorStore.GetByID.
func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	var rec authorRecord
	err := s.repo.view(func(txn *badger.Txn) error {
		return getRecord(txn, authorKey(id), &rec)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrAuthorNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get author",
			slog.String("error", err.Error()), slog.Int64("author_id", id))
		return nil, err
	}
	return &domain.Author{ID: rec.ID, Username: rec.Username, CreatedAt: rec.CreatedAt}, nil
}
