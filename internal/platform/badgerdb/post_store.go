package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// PostStore implements store.PostStore on Badger.
type PostStore struct {
	repo   *Repository
	logger *slog.Logger
}

var _ store.PostStore = (*PostStore)(nil)

// Create implements store.PostStore.Create.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.repo.update(func(txn *badger.Txn) error {
		ok, err := exists(txn, authorKey(post.AuthorID))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", store.ErrAuthorNotFound, post.AuthorID)
		}

		id, err := nextID(txn, postSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		return setRecord(txn, postKey(id), newPostRecord(post))
	})
	if err != nil {
		post.ID = 0
		log.Error("failed to create post", slog.String("error", err.Error()), slog.Int64("author_id", post.AuthorID))
		return err
	}

	log.Debug("post created", slog.Int64("post_id", post.ID), slog.Int64("author_id", post.AuthorID))
	return nil
}

// GetByID implements store.PostStore.GetByID.
func (s *PostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rec postRecord
	err := s.repo.view(func(txn *badger.Txn) error {
		return getRecord(txn, postKey(id), &rec)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return nil, err
	}
	return rec.toDomain(), nil
}

// List implements store.PostStore.List.
func (s *PostStore) List(ctx context.Context, opts domain.ListOptions) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var matched []*postRecord
	err := s.repo.view(func(txn *badger.Txn) error {
		return forEach(txn, []byte(postKeyPrefix), func(rec *postRecord) {
			if opts.Matches(rec.Content) {
				matched = append(matched, rec)
			}
		})
	})
	if err != nil {
		log.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, err
	}

	desc := opts.Sort != domain.SortAsc
	sort.Slice(matched, func(i, j int) bool {
		return lessByUpdated(matched[i].UpdatedAt, matched[j].UpdatedAt, matched[i].ID, matched[j].ID, desc)
	})

	start, end := opts.Window(len(matched))
	posts := make([]*domain.Post, 0, end-start)
	for _, rec := range matched[start:end] {
		posts = append(posts, rec.toDomain())
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

// Update implements store.PostStore.Update. Only the editable fields and
// UpdatedAt are written.
func (s *PostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("post_id", post.ID))
		return err
	}

	err := s.repo.update(func(txn *badger.Txn) error {
		var rec postRecord
		if err := getRecord(txn, postKey(post.ID), &rec); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrPostNotFound
			}
			return err
		}

		rec.Title = post.Title
		rec.Subtitle = post.Subtitle
		rec.Content = post.Content
		rec.UpdatedAt = post.UpdatedAt
		return setRecord(txn, postKey(post.ID), &rec)
	})
	if err != nil {
		log.Debug("post not updated", slog.String("error", err.Error()), slog.Int64("post_id", post.ID))
		return err
	}

	log.Debug("post updated", slog.Int64("post_id", post.ID))
	return nil
}

// Delete implements store.PostStore.Delete. A post that still has comments
// is rejected with store.ErrInvalidEntity.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.repo.update(func(txn *badger.Txn) error {
		ok, err := exists(txn, postKey(id))
		if err != nil {
			return err
		}
		if !ok {
			return store.ErrPostNotFound
		}

		it := txn.NewIterator(badger.IteratorOptions{Prefix: commentPrefix(id)})
		it.Rewind()
		hasComments := it.Valid()
		it.Close()
		if hasComments {
			return fmt.Errorf("%w: post %d still has comments", store.ErrInvalidEntity, id)
		}

		return txn.Delete(postKey(id))
	})
	if err != nil {
		log.Debug("post not deleted", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return err
	}

	log.Debug("post deleted", slog.Int64("post_id", id))
	return nil
}
