package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a CounterStore backed by Redis, for deployments with more
// than one serving instance. Windows are fixed rather than sliding: the TTL
// is set on the first hit and the counter vanishes with the key.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore returns a CounterStore using the given Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Increment adds one failure for key, starting the window TTL on the first hit.
func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("gate: incr %s: %w", key, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("gate: expire %s: %w", key, err)
		}
	}
	return count, nil
}

// Count returns the current count for key. Missing keys are zero.
func (s *RedisStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("gate: get %s: %w", key, err)
	}
	return count, nil
}

// Reset clears the counter for key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("gate: del %s: %w", key, err)
	}
	return nil
}
