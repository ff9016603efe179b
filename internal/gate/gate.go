// Package gate computes a risk decision for each login from recent
// login-attempt history: allow, block, or allow with a new-device warning.
package gate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"studyprep/backend/internal/device"
	attemptdomain "studyprep/backend/internal/loginattempt/domain"
)

// RiskLevel is a qualitative score derived from recent attempt history.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Block reasons surfaced to callers. Deliberately vague about which signal
// tripped beyond email vs address.
const (
	ReasonTooManyForEmail = "too many failed attempts for this account"
	ReasonTooManyForIP    = "too many failed attempts from this address"
	ReasonNewDevice       = "login from a new device or location"
)

// Decision is the gate's verdict for one login attempt. A block always wins
// over a new-device warning.
type Decision struct {
	Allowed   bool
	Reason    string
	RiskLevel RiskLevel
	NewDevice bool
}

// History is the slice of the login-attempt repository used for new-device
// checks.
type History interface {
	RecentSuccessesByEmail(ctx context.Context, email string, since time.Time, limit int) ([]*attemptdomain.Attempt, error)
}

// Config holds gate thresholds. Zero values fall back to defaults.
type Config struct {
	// MaxFailures is the failed-attempt budget per email and per ip within
	// FailureWindow. At the budget the next attempt is blocked.
	MaxFailures   int64
	FailureWindow time.Duration
	// NoveltyWindow bounds how far back successful logins are considered when
	// deciding whether a device/address is new for the user.
	NoveltyWindow time.Duration
}

const (
	defaultMaxFailures   = 5
	defaultFailureWindow = 15 * time.Minute
	defaultNoveltyWindow = 30 * 24 * time.Hour
	noveltyLookback      = 20
)

func (c Config) withDefaults() Config {
	if c.MaxFailures <= 0 {
		c.MaxFailures = defaultMaxFailures
	}
	if c.FailureWindow <= 0 {
		c.FailureWindow = defaultFailureWindow
	}
	if c.NoveltyWindow <= 0 {
		c.NoveltyWindow = defaultNoveltyWindow
	}
	return c
}

// Gate evaluates login attempts against counters and history.
type Gate struct {
	counters CounterStore
	history  History
	cfg      Config
	log      *zap.Logger
}

// New returns a Gate over the given counter store and attempt history.
// log may be nil.
func New(counters CounterStore, history History, cfg Config, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{counters: counters, history: history, cfg: cfg.withDefaults(), log: log}
}

// Evaluate returns the decision for a login attempt by email from ip with the
// presented device. Counter reads are security-critical and their failures
// propagate; the new-device check is advisory and degrades to "not new" when
// history cannot be read.
func (g *Gate) Evaluate(ctx context.Context, email, ip string, dev device.Info) (*Decision, error) {
	emailCount, err := g.counters.Count(ctx, EmailKey(email))
	if err != nil {
		return nil, err
	}
	if emailCount >= g.cfg.MaxFailures {
		return &Decision{Allowed: false, Reason: ReasonTooManyForEmail, RiskLevel: RiskHigh}, nil
	}
	ipCount, err := g.counters.Count(ctx, IPKey(ip))
	if err != nil {
		return nil, err
	}
	if ipCount >= g.cfg.MaxFailures {
		return &Decision{Allowed: false, Reason: ReasonTooManyForIP, RiskLevel: RiskHigh}, nil
	}

	if g.isNewDevice(ctx, email, ip, dev) {
		return &Decision{Allowed: true, Reason: ReasonNewDevice, RiskLevel: RiskHigh, NewDevice: true}, nil
	}

	risk := RiskLow
	if emailCount > 0 || ipCount > 0 {
		risk = RiskMedium
	}
	return &Decision{Allowed: true, RiskLevel: risk}, nil
}

// isNewDevice reports whether neither the address nor the fingerprint has been
// seen on a successful login inside the novelty window. A user with no
// successful history yet is not flagged.
func (g *Gate) isNewDevice(ctx context.Context, email, ip string, dev device.Info) bool {
	since := time.Now().UTC().Add(-g.cfg.NoveltyWindow)
	successes, err := g.history.RecentSuccessesByEmail(ctx, email, since, noveltyLookback)
	if err != nil {
		g.log.Warn("gate: attempt history unavailable for new-device check",
			zap.String("email", email), zap.Error(err))
		return false
	}
	if len(successes) == 0 {
		return false
	}
	for _, a := range successes {
		if a.IPAddress == ip {
			return false
		}
		if dev.Known() && a.Fingerprint == dev.Fingerprint {
			return false
		}
	}
	return true
}

// RecordFailure bumps the failure counters after a failed password check or a
// block.
func (g *Gate) RecordFailure(ctx context.Context, email, ip string) error {
	if _, err := g.counters.Increment(ctx, EmailKey(email), g.cfg.FailureWindow); err != nil {
		return err
	}
	if _, err := g.counters.Increment(ctx, IPKey(ip), g.cfg.FailureWindow); err != nil {
		return err
	}
	return nil
}

// RecordSuccess clears the account's failure counter after a successful login.
// The address counter is left alone: a shared NAT should not be forgiven by
// one tenant logging in.
func (g *Gate) RecordSuccess(ctx context.Context, email string) error {
	return g.counters.Reset(ctx, EmailKey(email))
}
