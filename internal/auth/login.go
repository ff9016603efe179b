package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditdomain "studyprep/backend/internal/audit/domain"
	"studyprep/backend/internal/device"
	"studyprep/backend/internal/gate"
	attemptdomain "studyprep/backend/internal/loginattempt/domain"
	"studyprep/backend/internal/metrics"
	tokendomain "studyprep/backend/internal/refreshtoken/domain"
	"studyprep/backend/internal/security"
	sessiondomain "studyprep/backend/internal/session/domain"
)

// Login authenticates the credentials and, when the gate allows, issues an
// access and refresh token pair and opens a session for the presenting device.
// The refresh-token write is required for success; session, last-login,
// attempt, and audit writes are best-effort bookkeeping after issuance.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	dev := in.Device.Normalize()
	if verr := validateLogin(email, in.Password, s.cfg.MinPasswordLength); verr != nil {
		return nil, verr
	}

	decision, err := s.gate.Evaluate(ctx, email, in.IPAddress, dev)
	if err != nil {
		return nil, s.internal("login: security gate", err, zap.String("email", email))
	}
	if !decision.Allowed {
		// A blocked attempt still lands in the attempt log and counters, so
		// sliding-window and counter-backed gates see the same history.
		s.recordAttempt(ctx, email, in.IPAddress, in.UserAgent, dev, false, attemptdomain.ReasonBlocked)
		if err := s.gate.RecordFailure(ctx, email, in.IPAddress); err != nil {
			s.log.Warn("auth: failed to bump failure counters", zap.String("email", email), zap.Error(err))
		}
		s.metrics.ObserveLogin(metrics.OutcomeBlocked)
		s.metrics.ObserveBlock(blockKind(decision.Reason))
		return nil, securityBlock(decision.Reason)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.internal("login: user lookup", err, zap.String("email", email))
	}
	if user == nil {
		return s.failLogin(ctx, email, in.IPAddress, in.UserAgent, dev, attemptdomain.ReasonUnknownEmail, ErrInvalidCredentials)
	}
	if !user.Active {
		return s.failLogin(ctx, email, in.IPAddress, in.UserAgent, dev, attemptdomain.ReasonAccountDisabled, ErrAccountDisabled)
	}
	ok, err := s.hasher.Verify(user.PasswordHash, []byte(in.Password))
	if err != nil {
		return nil, s.internal("login: unreadable password digest", err, zap.String("user_id", user.ID))
	}
	if !ok {
		return s.failLogin(ctx, email, in.IPAddress, in.UserAgent, dev, attemptdomain.ReasonInvalidPassword, ErrInvalidCredentials)
	}

	access, _, err := s.provider.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, s.internal("login: sign access token", err, zap.String("user_id", user.ID))
	}
	raw, err := security.NewRefreshToken()
	if err != nil {
		return nil, s.internal("login: generate refresh token", err, zap.String("user_id", user.ID))
	}

	now := time.Now().UTC()
	window := s.cfg.RefreshTTL
	if in.RememberMe {
		window = s.cfg.RememberMeTTL
	}
	token := &tokendomain.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: security.HashToken(raw),
		Device:    dev,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(window),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, s.internal("login: store refresh token", err, zap.String("user_id", user.ID))
	}

	// The credentials are issued; everything below is bookkeeping.
	sess := &sessiondomain.Session{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		AccessTokenHash: security.HashToken(access),
		Device:          dev,
		IPAddress:       in.IPAddress,
		UserAgent:       in.UserAgent,
		CreatedAt:       now,
		ExpiresAt:       now.Add(window),
		LastActivity:    now,
		Active:          true,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		s.metrics.SideWriteFailure("session_create")
		s.log.Warn("auth: failed to create session", zap.String("user_id", user.ID), zap.Error(err))
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.metrics.SideWriteFailure("last_login")
		s.log.Warn("auth: failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	s.recordAttempt(ctx, email, in.IPAddress, in.UserAgent, dev, true, "")
	if err := s.gate.RecordSuccess(ctx, email); err != nil {
		s.log.Warn("auth: failed to reset failure counter", zap.String("email", email), zap.Error(err))
	}
	s.audit.Record(ctx, &auditdomain.Event{
		UserID:     user.ID,
		Action:     auditdomain.ActionLogin,
		Resource:   auditdomain.ResourceSession,
		ResourceID: sess.ID,
		Details:    loginDetails(decision),
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
	})
	s.metrics.ObserveLogin(metrics.OutcomeSuccess)

	res := &LoginResult{
		AccessToken:            access,
		RefreshToken:           raw,
		ExpiresIn:              int(s.provider.AccessTTL().Seconds()),
		User:                   userInfo(user),
		RequiresPasswordChange: user.FirstLogin,
	}
	if decision.NewDevice {
		res.SecurityWarning = decision.Reason
	}
	return res, nil
}

// failLogin records the failed attempt with its internal reason, bumps the
// failure counters, and returns the external error. The internal reason never
// reaches the caller.
func (s *Service) failLogin(ctx context.Context, email, ip, userAgent string, dev device.Info, reason string, ext *Error) (*LoginResult, error) {
	s.recordAttempt(ctx, email, ip, userAgent, dev, false, reason)
	if err := s.gate.RecordFailure(ctx, email, ip); err != nil {
		s.log.Warn("auth: failed to bump failure counters", zap.String("email", email), zap.Error(err))
	}
	s.metrics.ObserveLogin(metrics.OutcomeFailure)
	return nil, ext
}

func blockKind(reason string) string {
	if reason == gate.ReasonTooManyForIP {
		return "ip"
	}
	return "email"
}

func loginDetails(d *gate.Decision) string {
	details := "risk=" + string(d.RiskLevel)
	if d.NewDevice {
		details += " new_device"
	}
	return details
}
