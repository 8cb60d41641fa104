// Package cache stores rendered GET responses with a TTL and drops them by tag
// when the data behind them changes.
package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/platform/logger"
)

// Tags shared by the response cache and its invalidator.
const (
	// TagPosts marks every cached listing or post.
	TagPosts = "posts"
)

// PostTag returns the tag of responses that render post id or its comments.
func PostTag(id int64) string {
	return fmt.Sprintf("post:%d", id)
}

// Service defines the caching operations used by the HTTP layer.
type Service interface {
	// Set stores data under key for duration and indexes it under tags.
	Set(ctx context.Context, key string, data []byte, tags []string, duration time.Duration) error

	// Get returns the cached data for key. A miss returns (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Invalidate removes every entry indexed under any of tags and advances
	// the generation of each tag.
	Invalidate(ctx context.Context, tags ...string) error

	// Snapshot returns the current generation of each of tags.
	Snapshot(ctx context.Context, tags ...string) (Snapshot, error)

	// SetIfCurrent stores data like Set, indexed under the tags of snap, unless
	// any of those tags was invalidated after snap was taken. It reports
	// whether the entry was stored.
	SetIfCurrent(ctx context.Context, key string, data []byte, snap Snapshot, duration time.Duration) (bool, error)
}

// Snapshot maps a tag to its invalidation generation.
type Snapshot map[string]uint64

// Tags returns the tags covered by the snapshot.
func (s Snapshot) Tags() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	return tags
}

const (
	entryPrefix = "cache:entry:"
	tagPrefix   = "cache:tag:"
	genPrefix   = "cache:gen:"
)

// BadgerService implements Service on a Badger database. Entry expiry uses
// Badger's native TTL; tag index keys share the TTL of their entry.
type BadgerService struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ Service = (*BadgerService)(nil)

// NewBadgerService creates a BadgerService. It panics if db is nil.
func NewBadgerService(db *badger.DB, logger *slog.Logger) *BadgerService {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerService{
		db:     db,
		logger: logger.With(slog.String("component", "response_cache")),
	}
}

func entryKey(key string) []byte {
	return []byte(entryPrefix + key)
}

func tagIndexPrefix(tag string) []byte {
	return []byte(tagPrefix + tag + ":")
}

func genKey(tag string) []byte {
	return []byte(genPrefix + tag)
}

// readGeneration returns the generation of tag; a tag never invalidated is at 0.
func readGeneration(txn *badger.Txn, tag string) (uint64, error) {
	item, err := txn.Get(genKey(tag))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var gen uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt generation for tag %q", tag)
		}
		gen = binary.BigEndian.Uint64(val)
		return nil
	})
	return gen, err
}

func bumpGeneration(txn *badger.Txn, tag string) error {
	gen, err := readGeneration(txn, tag)
	if err != nil {
		return err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, gen+1)
	return txn.Set(genKey(tag), buf)
}

func putEntry(txn *badger.Txn, key string, data []byte, tags []string, duration time.Duration) error {
	if err := txn.SetEntry(badger.NewEntry(entryKey(key), data).WithTTL(duration)); err != nil {
		return err
	}
	for _, tag := range tags {
		indexKey := append(tagIndexPrefix(tag), key...)
		if err := txn.SetEntry(badger.NewEntry(indexKey, nil).WithTTL(duration)); err != nil {
			return err
		}
	}
	return nil
}

// Set implements Service.Set.
func (s *BadgerService) Set(
	ctx context.Context,
	key string,
	data []byte,
	tags []string,
	duration time.Duration,
) error {
	if duration <= 0 {
		return nil
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return putEntry(txn, key, data, tags, duration)
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to store cache entry",
			slog.String("error", err.Error()))
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Snapshot implements Service.Snapshot.
func (s *BadgerService) Snapshot(ctx context.Context, tags ...string) (Snapshot, error) {
	snap := make(Snapshot, len(tags))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, tag := range tags {
			gen, err := readGeneration(txn, tag)
			if err != nil {
				return err
			}
			snap[tag] = gen
		}
		return nil
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to read cache generations",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("cache snapshot: %w", err)
	}
	return snap, nil
}

// errStale aborts a conditional store whose snapshot is out of date.
var errStale = errors.New("stale snapshot")

// SetIfCurrent implements Service.SetIfCurrent. The generations are read in
// the same transaction that writes the entry, so an Invalidate committed in
// between makes the write fail with badger.ErrConflict.
func (s *BadgerService) SetIfCurrent(
	ctx context.Context,
	key string,
	data []byte,
	snap Snapshot,
	duration time.Duration,
) (bool, error) {
	if duration <= 0 {
		return false, nil
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for tag, want := range snap {
			gen, err := readGeneration(txn, tag)
			if err != nil {
				return err
			}
			if gen != want {
				return errStale
			}
		}
		return putEntry(txn, key, data, snap.Tags(), duration)
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStale), errors.Is(err, badger.ErrConflict):
		logger.FromContextOrDefault(ctx, s.logger).Debug("skipped stale cache entry")
		return false, nil
	default:
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to store cache entry",
			slog.String("error", err.Error()))
		return false, fmt.Errorf("cache set: %w", err)
	}
}

// Get implements Service.Get.
func (s *BadgerService) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to read cache entry",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Invalidate implements Service.Invalidate.
func (s *BadgerService) Invalidate(ctx context.Context, tags ...string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int
	err := s.db.Update(func(txn *badger.Txn) error {
		for _, tag := range tags {
			if err := bumpGeneration(txn, tag); err != nil {
				return err
			}
			prefix := tagIndexPrefix(tag)

			var indexKeys [][]byte
			it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
			for it.Rewind(); it.Valid(); it.Next() {
				indexKeys = append(indexKeys, it.Item().KeyCopy(nil))
			}
			it.Close()

			for _, indexKey := range indexKeys {
				cacheKey := string(indexKey[len(prefix):])
				if err := txn.Delete(entryKey(cacheKey)); err != nil {
					return err
				}
				if err := txn.Delete(indexKey); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("failed to invalidate cache", slog.String("error", err.Error()), slog.Any("tags", tags))
		return fmt.Errorf("cache invalidate: %w", err)
	}

	log.Debug("cache invalidated", slog.Any("tags", tags), slog.Int("entries", removed))
	return nil
}
