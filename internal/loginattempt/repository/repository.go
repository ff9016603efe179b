package repository

import (
	"context"
	"time"

	"studyprep/backend/internal/loginattempt/domain"
)

// Repository defines persistence for login attempts.
type Repository interface {
	Create(ctx context.Context, a *domain.Attempt) error
	// CountFailuresByEmail counts failed attempts for the email since the given
	// instant, ignoring failures older than the last successful login.
	CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error)
	// CountFailuresByIP counts failed attempts from the address since the given
	// instant.
	CountFailuresByIP(ctx context.Context, ip string, since time.Time) (int64, error)
	// RecentSuccessesByEmail returns up to limit successful attempts for the
	// email since the given instant, newest first. Used for new-device checks.
	RecentSuccessesByEmail(ctx context.Context, email string, since time.Time, limit int) ([]*domain.Attempt, error)
}
