package badger

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/storage"
)

const (
	accessPrefix = "ap:"
	sep          = 0x00
	valueSize    = 16

	maxConflictRetries = 10
)

// AccessStore keeps co-retrieval counters in BadgerDB.
// Counters only ever increase; concurrent writers are serialized by badger's
// optimistic transactions and retried on conflict.
type AccessStore struct {
	db *badger.DB
}

// NewAccessStore creates an AccessStore on an open database.
func NewAccessStore(db *badger.DB) *AccessStore {
	return &AccessStore{db: db}
}

// Increment adds one to the counter of every pair and advances its last-seen time to at.
// Pairs are unordered; (a, b) and (b, a) address the same counter. Self pairs are ignored.
func (s *AccessStore) Increment(ctx context.Context, owner string, pairs [][2]string, at time.Time) error {
	if len(pairs) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.db.Update(func(txn *badger.Txn) error {
			for _, pair := range pairs {
				a, b := pair[0], pair[1]
				if a == b {
					continue
				}
				if b < a {
					a, b = b, a
				}
				key := pairKey(owner, a, b)

				var count uint64
				var lastSeen int64
				item, err := txn.Get(key)
				switch {
				case errors.Is(err, badger.ErrKeyNotFound):
				case err != nil:
					return err
				default:
					if err := item.Value(func(val []byte) error {
						count, lastSeen, err = decodeValue(val)
						return err
					}); err != nil {
						return err
					}
				}

				count++
				lastSeen = max(lastSeen, at.UnixNano())
				if err := txn.Set(key, encodeValue(count, lastSeen)); err != nil {
					return err
				}
			}
			return nil
		})

		if errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries {
			logger.DebugContext(ctx, "access pattern increment conflicted, retrying", "owner", owner, "attempt", attempt)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to increment access patterns: %w", err)
		}
		return nil
	}
}

// ListPairs returns every access pattern recorded for the owner, ordered by key.
func (s *AccessStore) ListPairs(ctx context.Context, owner string) ([]storage.AccessPattern, error) {
	prefix := ownerPrefix(owner)
	var patterns []storage.AccessPattern

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := iter.Item()
			a, b, ok := splitPair(item.Key()[len(prefix):])
			if !ok {
				continue
			}
			var count uint64
			var lastSeen int64
			if err := item.Value(func(val []byte) error {
				var err error
				count, lastSeen, err = decodeValue(val)
				return err
			}); err != nil {
				return err
			}
			patterns = append(patterns, storage.AccessPattern{
				A:        a,
				B:        b,
				Count:    count,
				LastSeen: time.Unix(0, lastSeen).UTC(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list access patterns: %w", err)
	}
	return patterns, nil
}

func ownerPrefix(owner string) []byte {
	key := make([]byte, 0, len(accessPrefix)+len(owner)+1)
	key = append(key, accessPrefix...)
	key = append(key, owner...)
	return append(key, sep)
}

func pairKey(owner, a, b string) []byte {
	key := ownerPrefix(owner)
	key = append(key, a...)
	key = append(key, sep)
	return append(key, b...)
}

func splitPair(rest []byte) (string, string, bool) {
	i := bytes.IndexByte(rest, sep)
	if i < 0 {
		return "", "", false
	}
	return string(rest[:i]), string(rest[i+1:]), true
}

func encodeValue(count uint64, lastSeen int64) []byte {
	buf := make([]byte, valueSize)
	binary.BigEndian.PutUint64(buf[:8], count)
	binary.BigEndian.PutUint64(buf[8:], uint64(lastSeen))
	return buf
}

func decodeValue(val []byte) (uint64, int64, error) {
	if len(val) != valueSize {
		return 0, 0, fmt.Errorf("access pattern value has %d bytes, want %d", len(val), valueSize)
	}
	return binary.BigEndian.Uint64(val[:8]), int64(binary.BigEndian.Uint64(val[8:])), nil
}
