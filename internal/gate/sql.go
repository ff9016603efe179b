package gate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FailureCounts is the slice of the login-attempt repository the SQL-backed
// store reads.
type FailureCounts interface {
	CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error)
	CountFailuresByIP(ctx context.Context, ip string, since time.Time) (int64, error)
}

// SQLStore counts failures straight off the login_attempts table over a true
// sliding window. The attempt row inserted after each failed login is the
// increment, so Increment and Reset are no-ops; the window is fixed at
// construction. Needs no infrastructure beyond the database every instance
// already shares.
type SQLStore struct {
	attempts FailureCounts
	window   time.Duration
	nowF     func() time.Time
}

// NewSQLStore returns a CounterStore reading attempts over the given window.
func NewSQLStore(attempts FailureCounts, window time.Duration) *SQLStore {
	return &SQLStore{attempts: attempts, window: window, nowF: func() time.Time { return time.Now().UTC() }}
}

// Increment is a no-op: the persisted attempt row is the source of truth.
func (s *SQLStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, nil
}

// Count counts failed attempts behind key within the store's window.
func (s *SQLStore) Count(ctx context.Context, key string) (int64, error) {
	since := s.nowF().Add(-s.window)
	if email, ok := strings.CutPrefix(key, "login:email:"); ok {
		return s.attempts.CountFailuresByEmail(ctx, email, since)
	}
	if ip, ok := strings.CutPrefix(key, "login:ip:"); ok {
		return s.attempts.CountFailuresByIP(ctx, ip, since)
	}
	return 0, fmt.Errorf("gate: unknown counter key %q", key)
}

// Reset is a no-op: attempt history is append-only.
func (s *SQLStore) Reset(ctx context.Context, key string) error {
	return nil
}
