package security

import (
	"crypto/rand"
	"encoding/base64"
)

const refreshTokenBytes = 32

// NewRefreshToken generates an opaque refresh token: 32 bytes from crypto/rand,
// base64url-encoded without padding. The raw value is handed to the caller
// exactly once; persistence stores only HashToken of it.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
