package repository

import (
	"context"
	"time"

	"studyprep/backend/internal/session/domain"
)

// Repository defines persistence for sessions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// ListActiveByUser returns the user's sessions that are active and unexpired
	// at now, most recently used first.
	ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	// Touch updates last_activity (and the observed ip) on the user's live
	// sessions. Best-effort bookkeeping, not security-critical.
	Touch(ctx context.Context, userID, ip string, at time.Time) error
	// Deactivate marks one session inactive, scoped to its owner.
	Deactivate(ctx context.Context, userID, sessionID string) error
	DeactivateAllByUser(ctx context.Context, userID string) error
}
