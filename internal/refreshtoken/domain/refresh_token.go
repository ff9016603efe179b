package domain

import (
	"time"

	"studyprep/backend/internal/device"
)

// Revocation reasons recorded on retired tokens.
const (
	ReasonRotated   = "rotated"
	ReasonLogout    = "logout"
	ReasonLogoutAll = "logout_all"
)

// RefreshToken is one link in a rotation lineage. Only the SHA-256 hash of the
// opaque value is stored; the raw token exists client-side only. At most one
// link per lineage is live at a time: rotation retires the predecessor with a
// conditional update before its successor is handed out.
type RefreshToken struct {
	ID            string
	UserID        string
	TokenHash     string
	Device        device.Info
	IPAddress     string
	UserAgent     string
	CreatedAt     time.Time
	ExpiresAt     time.Time
	Revoked       bool
	RevokedAt     *time.Time // nil when not revoked
	RevokedReason string
	LastUsedAt    *time.Time
}

// Live reports whether the token can still be exchanged at now. Revoked and
// expired are both terminal; nothing transitions back.
func (t *RefreshToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// Window returns the lifetime the token was issued with. Successors inherit
// it, so a remember-me lineage stays long-lived across rotations.
func (t *RefreshToken) Window() time.Duration {
	return t.ExpiresAt.Sub(t.CreatedAt)
}
