package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	auditdomain "studyprep/backend/internal/audit/domain"
	tokendomain "studyprep/backend/internal/refreshtoken/domain"
	"studyprep/backend/internal/security"
)

// Logout deactivates one session, owner-scoped. When the raw refresh token is
// presented it is retired too, best-effort; a failure there does not undo the
// session deactivation. Already-issued access tokens stay valid until expiry.
func (s *Service) Logout(ctx context.Context, in LogoutInput) error {
	userID := strings.TrimSpace(in.UserID)
	sessionID := strings.TrimSpace(in.SessionID)
	if userID == "" || sessionID == "" {
		return validationError("user id and session id required")
	}
	if err := s.sessions.Deactivate(ctx, userID, sessionID); err != nil {
		return s.internal("logout: deactivate session", err, zap.String("user_id", userID))
	}
	now := time.Now().UTC()
	if raw := strings.TrimSpace(in.RefreshToken); raw != "" {
		current, err := s.tokens.GetLiveByHash(ctx, security.HashToken(raw), now)
		switch {
		case err != nil:
			s.metrics.SideWriteFailure("logout_token_lookup")
			s.log.Warn("auth: failed to look up token on logout", zap.String("user_id", userID), zap.Error(err))
		case current == nil || current.UserID != userID:
			// Unknown or foreign token; nothing to retire.
		default:
			if _, err := s.tokens.Revoke(ctx, current.ID, tokendomain.ReasonLogout, now); err != nil {
				s.metrics.SideWriteFailure("logout_token_revoke")
				s.log.Warn("auth: failed to revoke token on logout", zap.String("token_id", current.ID), zap.Error(err))
			}
		}
	}
	s.audit.Record(ctx, &auditdomain.Event{
		UserID:     userID,
		Action:     auditdomain.ActionRevoke,
		Resource:   auditdomain.ResourceSession,
		ResourceID: sessionID,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
	})
	s.metrics.ObserveRevocation("session")
	return nil
}

// LogoutAll deactivates every session and revokes every live refresh token for
// the user. Both writes run even when the first fails; afterwards no session
// is active and no refresh token can be exchanged.
func (s *Service) LogoutAll(ctx context.Context, in LogoutAllInput) error {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return validationError("user id required")
	}
	now := time.Now().UTC()
	sessErr := s.sessions.DeactivateAllByUser(ctx, userID)
	tokErr := s.tokens.RevokeAllByUser(ctx, userID, tokendomain.ReasonLogoutAll, now)
	if sessErr != nil {
		return s.internal("logout all: deactivate sessions", sessErr, zap.String("user_id", userID))
	}
	if tokErr != nil {
		return s.internal("logout all: revoke tokens", tokErr, zap.String("user_id", userID))
	}
	s.audit.Record(ctx, &auditdomain.Event{
		UserID:     userID,
		Action:     auditdomain.ActionRevokeAll,
		Resource:   auditdomain.ResourceUser,
		ResourceID: userID,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
	})
	s.metrics.ObserveRevocation("all")
	return nil
}
