package security

import "time"

// NewTestTokenProvider returns a TokenProvider signed with a fixed secret and
// a 15 minute access TTL. For unit tests only. Callers must not use in
// production.
func NewTestTokenProvider() *TokenProvider {
	return NewTokenProvider([]byte("test-signing-secret-0123456789ab"), 15*time.Minute)
}
