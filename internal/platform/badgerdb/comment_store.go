package badgerdb

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/domain"
	"github.com/phrazzld/blog-api/internal/platform/logger"
	"github.com/phrazzld/blog-api/internal/store"
)

// CommentStore implements store.CommentStore on Badger. Comment keys embed
// the post id so a post's comments share one key prefix.
type CommentStore struct {
	repo   *Repository
	logger *slog.Logger
}

var _ store.CommentStore = (*CommentStore)(nil)

// Create implements store.CommentStore.Create.
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.repo.update(func(txn *badger.Txn) error {
		ok, err := exists(txn, postKey(comment.PostID))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", store.ErrPostNotFound, comment.PostID)
		}

		id, err := nextID(txn, commentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id
		return setRecord(txn, commentKey(comment.PostID, id), newCommentRecord(comment))
	})
	if err != nil {
		comment.ID = 0
		log.Debug("comment not created", slog.String("error", err.Error()), slog.Int64("post_id", comment.PostID))
		return err
	}

	log.Debug("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", comment.PostID))
	return nil
}

// ListByPost implements store.CommentStore.ListByPost.
func (s *CommentStore) ListByPost(
	ctx context.Context,
	postID int64,
	opts domain.ListOptions,
) ([]*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var matched []*commentRecord
	err := s.repo.view(func(txn *badger.Txn) error {
		return forEach(txn, commentPrefix(postID), func(rec *commentRecord) {
			if opts.Matches(rec.Content) {
				matched = append(matched, rec)
			}
		})
	})
	if err != nil {
		log.Error("failed to list comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return nil, err
	}

	desc := opts.Sort == domain.SortDesc
	sort.Slice(matched, func(i, j int) bool {
		return lessByUpdated(matched[i].UpdatedAt, matched[j].UpdatedAt, matched[i].ID, matched[j].ID, desc)
	})

	start, end := opts.Window(len(matched))
	comments := make([]*domain.Comment, 0, end-start)
	for _, rec := range matched[start:end] {
		comments = append(comments, rec.toDomain())
	}
	return comments, nil
}

// DeleteByPost implements store.CommentStore.DeleteByPost.
func (s *CommentStore) DeleteByPost(ctx context.Context, postID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var deleted int64
	err := s.repo.update(func(txn *badger.Txn) error {
		var keys [][]byte
		it := txn.NewIterator(badger.IteratorOptions{Prefix: commentPrefix(postID)})
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		deleted = int64(len(keys))
		return nil
	})
	if err != nil {
		log.Error("failed to delete comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return 0, err
	}

	log.Debug("comments deleted", slog.Int64("post_id", postID), slog.Int64("count", deleted))
	return deleted, nil
}
