package repository

import (
	"context"

	"studyprep/backend/internal/audit/domain"
)

// Repository defines persistence for audit events.
type Repository interface {
	Save(ctx context.Context, e *domain.Event) error
	// ListRecentByUser returns the user's events, newest first, paginated.
	ListRecentByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.Event, error)
}
