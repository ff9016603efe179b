package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"studyprep/backend/internal/security"
)

// Identity is the authenticated caller extracted from a validated access
// token. Email and role are the snapshot taken at issuance.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// ValidateAccess verifies the token's signature and expiry and checks that the
// subject still exists and is active. Session state is not consulted, so a
// revoked session's unexpired access token keeps working until it times out;
// the blast radius of that gap is the access TTL.
func (s *Service) ValidateAccess(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.provider.ValidateAccess(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, s.internal("validate access: user lookup", err, zap.String("user_id", claims.Subject))
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}
	return &Identity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
