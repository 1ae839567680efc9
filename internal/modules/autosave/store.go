// README: Autosave slot backed by a single Redis key.
package autosave

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "tourcalc:autosave"

// SlotStore holds at most one autosaved payload.
type SlotStore interface {
	Put(ctx context.Context, data []byte) error
	// Get returns ErrNoAutosave when the slot is empty.
	Get(ctx context.Context) ([]byte, error)
}

type RedisStore struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewRedisStore keeps the slot under key for ttl (0 keeps it forever).
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{redis: rdb, key: key, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, data []byte) error {
	return s.redis.Set(ctx, s.key, data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoAutosave
	}
	return data, err
}
