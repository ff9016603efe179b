package gate

import (
	"context"
	"sync"
	"time"
)

type counterEntry struct {
	count     int64
	windowEnd time.Time
}

// MemoryStore is an in-process CounterStore. Counters live until their window
// ends; expired entries are dropped lazily on access.
type MemoryStore struct {
	mu   sync.Mutex
	m    map[string]counterEntry
	nowF func() time.Time
}

// NewMemoryStore returns a new in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]counterEntry),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Increment adds one failure for key, starting a fresh window if none is open.
func (s *MemoryStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowF()
	e, ok := s.m[key]
	if !ok || !e.windowEnd.After(now) {
		e = counterEntry{windowEnd: now.Add(window)}
	}
	e.count++
	s.m[key] = e
	return e.count, nil
}

// Count returns the count for key, or zero when the window has ended.
func (s *MemoryStore) Count(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	if !ok {
		return 0, nil
	}
	if !e.windowEnd.After(s.nowF()) {
		delete(s.m, key)
		return 0, nil
	}
	return e.count, nil
}

// Reset clears the counter for key.
func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
