package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditdomain "studyprep/backend/internal/audit/domain"
	"studyprep/backend/internal/metrics"
	tokendomain "studyprep/backend/internal/refreshtoken/domain"
	"studyprep/backend/internal/security"
)

// Refresh exchanges a live refresh token for a new pair, retiring the
// presented one. The successor inherits the predecessor's device lineage and
// lifetime window, so a remember-me login stays long-lived across rotations.
func (s *Service) Refresh(ctx context.Context, in RefreshInput) (*RefreshResult, error) {
	raw := strings.TrimSpace(in.RefreshToken)
	if raw == "" {
		return nil, ErrInvalidRefreshToken
	}
	now := time.Now().UTC()
	current, err := s.tokens.GetLiveByHash(ctx, security.HashToken(raw), now)
	if err != nil {
		return nil, s.internal("refresh: token lookup", err)
	}
	if current == nil {
		s.metrics.ObserveRefresh(metrics.OutcomeInvalid)
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.users.GetByID(ctx, current.UserID)
	if err != nil {
		return nil, s.internal("refresh: user lookup", err, zap.String("user_id", current.UserID))
	}
	if user == nil {
		s.metrics.ObserveRefresh(metrics.OutcomeInvalid)
		return nil, ErrUserNotFound
	}
	if !user.Active {
		s.metrics.ObserveRefresh(metrics.OutcomeInvalid)
		return nil, ErrAccountDisabled
	}

	// The conditional revoke is the rotation lock: of two concurrent
	// exchanges of the same token, exactly one wins the update. The loser
	// must fail without issuing anything.
	won, err := s.tokens.Revoke(ctx, current.ID, tokendomain.ReasonRotated, now)
	if err != nil {
		return nil, s.internal("refresh: retire token", err, zap.String("token_id", current.ID))
	}
	if !won {
		s.metrics.RotationConflict()
		s.metrics.ObserveRefresh(metrics.OutcomeInvalid)
		s.log.Warn("auth: refresh token replayed or rotated concurrently",
			zap.String("user_id", user.ID), zap.String("token_id", current.ID))
		return nil, ErrInvalidRefreshToken
	}

	access, _, err := s.provider.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, s.internal("refresh: sign access token", err, zap.String("user_id", user.ID))
	}
	nextRaw, err := security.NewRefreshToken()
	if err != nil {
		return nil, s.internal("refresh: generate refresh token", err, zap.String("user_id", user.ID))
	}
	next := &tokendomain.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: security.HashToken(nextRaw),
		Device:    current.Device,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(current.Window()),
	}
	if err := s.tokens.Create(ctx, next); err != nil {
		return nil, s.internal("refresh: store refresh token", err, zap.String("user_id", user.ID))
	}

	if err := s.tokens.MarkUsed(ctx, current.ID, now); err != nil {
		s.metrics.SideWriteFailure("token_mark_used")
		s.log.Warn("auth: failed to stamp token use", zap.String("token_id", current.ID), zap.Error(err))
	}
	if err := s.sessions.Touch(ctx, user.ID, in.IPAddress, now); err != nil {
		s.metrics.SideWriteFailure("session_touch")
		s.log.Warn("auth: failed to touch sessions", zap.String("user_id", user.ID), zap.Error(err))
	}
	s.audit.Record(ctx, &auditdomain.Event{
		UserID:     user.ID,
		Action:     auditdomain.ActionRefresh,
		Resource:   auditdomain.ResourceToken,
		ResourceID: next.ID,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
	})
	s.metrics.ObserveRefresh(metrics.OutcomeSuccess)

	return &RefreshResult{
		AccessToken:  access,
		RefreshToken: nextRaw,
		ExpiresIn:    int(s.provider.AccessTTL().Seconds()),
		User:         userInfo(user),
	}, nil
}
