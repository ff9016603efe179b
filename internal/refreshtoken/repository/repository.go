package repository

import (
	"context"
	"time"

	"studyprep/backend/internal/refreshtoken/domain"
)

// Repository defines persistence for refresh tokens.
type Repository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	// GetLiveByHash returns the non-revoked, unexpired token matching tokenHash,
	// or nil if there is none.
	GetLiveByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error)
	// Revoke retires the token only if it is not already revoked and reports
	// whether this call won the update. Two concurrent rotations of the same
	// token therefore resolve to exactly one winner.
	Revoke(ctx context.Context, id, reason string, at time.Time) (bool, error)
	// RevokeAllByUser retires every live token for the user.
	RevokeAllByUser(ctx context.Context, userID, reason string, at time.Time) error
	// MarkUsed stamps last_used_at. Best-effort bookkeeping.
	MarkUsed(ctx context.Context, id string, at time.Time) error
}
