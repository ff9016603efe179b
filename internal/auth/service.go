// Package auth implements the authentication and session lifecycle core:
// credential checks, risk gating, dual-token issuance, refresh rotation, and
// revocation, composed behind one service facade. Transport concerns (cookies,
// status codes, routing) belong to the callers.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studyprep/backend/internal/audit"
	"studyprep/backend/internal/device"
	"studyprep/backend/internal/gate"
	attemptdomain "studyprep/backend/internal/loginattempt/domain"
	"studyprep/backend/internal/metrics"
	tokendomain "studyprep/backend/internal/refreshtoken/domain"
	"studyprep/backend/internal/security"
	sessiondomain "studyprep/backend/internal/session/domain"
	userdomain "studyprep/backend/internal/user/domain"
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	Create(ctx context.Context, s *sessiondomain.Session) error
	ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]*sessiondomain.Session, error)
	Touch(ctx context.Context, userID, ip string, at time.Time) error
	Deactivate(ctx context.Context, userID, sessionID string) error
	DeactivateAllByUser(ctx context.Context, userID string) error
}

// TokenRepo is the minimal refresh-token repository needed by the auth service.
type TokenRepo interface {
	Create(ctx context.Context, t *tokendomain.RefreshToken) error
	GetLiveByHash(ctx context.Context, tokenHash string, now time.Time) (*tokendomain.RefreshToken, error)
	Revoke(ctx context.Context, id, reason string, at time.Time) (bool, error)
	RevokeAllByUser(ctx context.Context, userID, reason string, at time.Time) error
	MarkUsed(ctx context.Context, id string, at time.Time) error
}

// AttemptRepo is the minimal login-attempt repository needed by the auth
// service. Attempts are append-only.
type AttemptRepo interface {
	Create(ctx context.Context, a *attemptdomain.Attempt) error
}

// SecurityGate decides whether a login may proceed and maintains the failure
// counters behind that decision.
type SecurityGate interface {
	Evaluate(ctx context.Context, email, ip string, dev device.Info) (*gate.Decision, error)
	RecordFailure(ctx context.Context, email, ip string) error
	RecordSuccess(ctx context.Context, email string) error
}

// Config holds refresh lifetimes and validation thresholds. Zero values fall
// back to defaults. The access-token lifetime lives on the TokenProvider.
type Config struct {
	RefreshTTL        time.Duration
	RememberMeTTL     time.Duration
	MinPasswordLength int
}

const (
	defaultRefreshTTL        = 7 * 24 * time.Hour
	defaultRememberMeTTL     = 90 * 24 * time.Hour
	defaultMinPasswordLength = 8
)

func (c Config) withDefaults() Config {
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = defaultRefreshTTL
	}
	if c.RememberMeTTL <= 0 {
		c.RememberMeTTL = defaultRememberMeTTL
	}
	if c.MinPasswordLength <= 0 {
		c.MinPasswordLength = defaultMinPasswordLength
	}
	return c
}

// Service is the auth facade. Every method is request-scoped and stateless;
// the persistence stores carry all shared state.
type Service struct {
	users    UserRepo
	sessions SessionRepo
	tokens   TokenRepo
	attempts AttemptRepo
	gate     SecurityGate
	hasher   *security.Hasher
	provider *security.TokenProvider
	audit    audit.Recorder
	metrics  *metrics.AuthMetrics
	log      *zap.Logger
	cfg      Config
}

// NewService returns a Service with the given dependencies. rec, m, and log
// may be nil.
func NewService(
	users UserRepo,
	sessions SessionRepo,
	tokens TokenRepo,
	attempts AttemptRepo,
	g SecurityGate,
	hasher *security.Hasher,
	provider *security.TokenProvider,
	rec audit.Recorder,
	m *metrics.AuthMetrics,
	log *zap.Logger,
	cfg Config,
) *Service {
	if rec == nil {
		rec = audit.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		attempts: attempts,
		gate:     g,
		hasher:   hasher,
		provider: provider,
		audit:    rec,
		metrics:  m,
		log:      log,
		cfg:      cfg.withDefaults(),
	}
}

// Sessions lists the user's active, unexpired sessions, most recently used
// first.
func (s *Service) Sessions(ctx context.Context, userID string) ([]*sessiondomain.Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, validationError("user id required")
	}
	list, err := s.sessions.ListActiveByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, s.internal("sessions: list", err, zap.String("user_id", userID))
	}
	return list, nil
}

// internal logs an unexpected failure with context and collapses it to
// ErrInternal for the caller.
func (s *Service) internal(op string, err error, fields ...zap.Field) error {
	s.log.Error("auth: "+op, append(fields, zap.Error(err))...)
	return ErrInternal
}

// recordAttempt appends one login-attempt row. Failures are logged, never
// surfaced; the attempt log is a signal, not a ledger.
func (s *Service) recordAttempt(ctx context.Context, email, ip, userAgent string, dev device.Info, success bool, reason string) {
	a := &attemptdomain.Attempt{
		ID:            uuid.New().String(),
		Email:         email,
		IPAddress:     ip,
		Success:       success,
		FailureReason: reason,
		UserAgent:     userAgent,
		Fingerprint:   dev.Fingerprint,
		AttemptedAt:   time.Now().UTC(),
	}
	if err := s.attempts.Create(ctx, a); err != nil {
		s.metrics.SideWriteFailure("login_attempt")
		s.log.Warn("auth: failed to record login attempt", zap.String("email", email), zap.Error(err))
	}
}
