package domain

import (
	"time"

	"studyprep/backend/internal/device"
)

// Session is the server-side record of an authenticated device. It tracks
// whether the device is currently trusted, independent of whether any issued
// access token is still cryptographically valid.
type Session struct {
	ID              string
	UserID          string
	AccessTokenHash string // SHA-256 hex of the access token issued with this session
	Device          device.Info
	IPAddress       string
	UserAgent       string
	CreatedAt       time.Time
	ExpiresAt       time.Time
	LastActivity    time.Time
	Active          bool
}

// Live reports whether the session is active and not yet expired at now.
// Expiry is lazy; rows are never reaped, only filtered.
func (s *Session) Live(now time.Time) bool {
	return s.Active && now.Before(s.ExpiresAt)
}
