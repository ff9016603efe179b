package gate

import (
	"context"
	"time"
)

// CounterStore tracks failed-login counts per key. With multiple serving
// instances the store must be shared (RedisStore or SQLStore); MemoryStore is
// correct for a single process only.
type CounterStore interface {
	// Increment adds one failure for key. The first hit in an empty window
	// starts a window of the given length. Returns the updated count.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	// Count returns the current failure count for key. Missing or expired keys
	// count as zero.
	Count(ctx context.Context, key string) (int64, error)
	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}

// EmailKey returns the counter key tracking failures against one account.
func EmailKey(email string) string {
	return "login:email:" + email
}

// IPKey returns the counter key tracking failures from one address.
func IPKey(ip string) string {
	return "login:ip:" + ip
}
