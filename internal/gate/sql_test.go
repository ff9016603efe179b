package gate

import (
	"context"
	"testing"
	"time"
)

// fakeFailureCounts records which lookup was used and with what arguments.
type fakeFailureCounts struct {
	emailArg string
	ipArg    string
	since    time.Time
	n        int64
}

func (f *fakeFailureCounts) CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	f.emailArg = email
	f.since = since
	return f.n, nil
}

func (f *fakeFailureCounts) CountFailuresByIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	f.ipArg = ip
	f.since = since
	return f.n, nil
}

func TestSQLStore_CountDispatchesByKey(t *testing.T) {
	fc := &fakeFailureCounts{n: 4}
	s := NewSQLStore(fc, 15*time.Minute)

	n, err := s.Count(context.Background(), EmailKey("a@x.com"))
	if err != nil {
		t.Fatalf("Count email key: %v", err)
	}
	if n != 4 || fc.emailArg != "a@x.com" {
		t.Errorf("email dispatch: n=%d arg=%q", n, fc.emailArg)
	}

	if _, err := s.Count(context.Background(), IPKey("1.2.3.4")); err != nil {
		t.Fatalf("Count ip key: %v", err)
	}
	if fc.ipArg != "1.2.3.4" {
		t.Errorf("ip dispatch: arg=%q", fc.ipArg)
	}
}

func TestSQLStore_CountWindow(t *testing.T) {
	fc := &fakeFailureCounts{}
	s := NewSQLStore(fc, 15*time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.nowF = func() time.Time { return now }

	if _, err := s.Count(context.Background(), EmailKey("a@x.com")); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if want := now.Add(-15 * time.Minute); !fc.since.Equal(want) {
		t.Errorf("since = %v, want %v", fc.since, want)
	}
}

func TestSQLStore_CountUnknownKey(t *testing.T) {
	s := NewSQLStore(&fakeFailureCounts{}, 15*time.Minute)
	if _, err := s.Count(context.Background(), "bogus:key"); err == nil {
		t.Fatal("Count with unknown key should error")
	}
}

func TestSQLStore_IncrementAndResetAreNoOps(t *testing.T) {
	s := NewSQLStore(&fakeFailureCounts{}, 15*time.Minute)
	ctx := context.Background()

	if _, err := s.Increment(ctx, EmailKey("a@x.com"), time.Minute); err != nil {
		t.Errorf("Increment: %v", err)
	}
	if err := s.Reset(ctx, EmailKey("a@x.com")); err != nil {
		t.Errorf("Reset: %v", err)
	}
}
