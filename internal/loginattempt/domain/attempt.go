package domain

import "time"

// Failure reasons recorded on attempts. These stay internal: externally the
// unknown-email and invalid-password cases are indistinguishable.
const (
	ReasonBlocked         = "blocked"
	ReasonUnknownEmail    = "unknown_email"
	ReasonInvalidPassword = "invalid_password"
	ReasonAccountDisabled = "account_disabled"
)

// Attempt is one append-only login-attempt record. The security gate reads
// recent attempts as its sliding-window signal; nothing ever updates or
// deletes a row.
type Attempt struct {
	ID            string
	Email         string
	IPAddress     string
	Success       bool
	FailureReason string
	UserAgent     string
	Fingerprint   string
	AttemptedAt   time.Time
}
