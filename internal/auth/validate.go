package auth

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validateLogin checks presence, email shape, and password length. Pure; the
// caller normalizes the email first. Password whitespace is significant and is
// not trimmed, but an all-whitespace password counts as missing.
func validateLogin(email, password string, minPasswordLength int) *Error {
	if email == "" || strings.TrimSpace(password) == "" {
		return validationError("email and password required")
	}
	if !emailPattern.MatchString(email) {
		return validationError("invalid email")
	}
	if len(password) < minPasswordLength {
		return validationError("password too short")
	}
	return nil
}
