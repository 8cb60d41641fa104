package badgerdb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/phrazzld/blog-api/internal/store"
)

// InMemory as a path opens a database that lives only in memory.
const InMemory = ":memory:"

// Key prefixes for the stored entities.
const (
	postKeyPrefix    = "post:"
	commentKeyPrefix = "comment:"
	authorKeyPrefix  = "author:"

	postSeqKey    = "seq:post"
	commentSeqKey = "seq:comment"
)

// Open opens or creates the Badger database at path. Pass InMemory for an
// ephemeral database. Badger's internal logging is routed through logger.
func Open(path string, logger *slog.Logger) (*badger.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts badger.Options
	if path == InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(&slogBadgerLogger{
		logger: logger.With(slog.String("component", "badger")),
	})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %q: %w", path, err)
	}
	return db, nil
}

func postKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", postKeyPrefix, id))
}

func commentPrefix(postID int64) []byte {
	return []byte(fmt.Sprintf("%s%020d:", commentKeyPrefix, postID))
}

func commentKey(postID, id int64) []byte {
	return append(commentPrefix(postID), []byte(fmt.Sprintf("%020d", id))...)
}

func authorKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", authorKeyPrefix, id))
}

// nextID increments the counter at seqKey inside txn. Concurrent writers
// conflict on the counter key, so ids are never reused.
func nextID(txn *badger.Txn, seqKey string) (int64, error) {
	var current uint64
	item, err := txn.Get([]byte(seqKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		err = item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt sequence %q", seqKey)
			}
			current = binary.BigEndian.Uint64(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	next := current + 1
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := txn.Set([]byte(seqKey), buf); err != nil {
		return 0, err
	}
	return int64(next), nil
}

func getRecord(txn *badger.Txn, key []byte, dst any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

func setRecord(txn *badger.Txn, key []byte, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return txn.Set(key, data)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// forEach decodes every record under prefix into a fresh T.
func forEach[T any](txn *badger.Txn, prefix []byte, fn func(rec *T)) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		rec := new(T)
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
		}
		fn(rec)
	}
	return nil
}

// mapError converts Badger errors to store errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrConflict):
		return fmt.Errorf("%w: %v", store.ErrTransactionFailed, err)
	default:
		return err
	}
}

// slogBadgerLogger adapts slog to the badger.Logger interface.
type slogBadgerLogger struct {
	logger *slog.Logger
}

func (l *slogBadgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogBadgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogBadgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *slogBadgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
