package repository

import (
	"context"
	"time"

	"studyprep/backend/internal/user/domain"
)

// Repository defines persistence for users. The auth core is a read-mostly
// consumer; Create exists for seeding and fixtures.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
