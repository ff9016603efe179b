package auth

import "errors"

// Error codes surfaced to callers. Transport layers map these to their own
// status vocabulary.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeSecurityBlock       = "SECURITY_BLOCK"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeAccountDisabled     = "ACCOUNT_DISABLED"
	CodeInvalidRefreshToken = "INVALID_REFRESH_TOKEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeInternal            = "INTERNAL_ERROR"
)

// Error is a typed auth failure. Message is safe to show to the end user;
// anything sensitive stays in the logs.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches errors by code so callers can test against the sentinels with
// errors.Is regardless of message wording.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for the expected failure modes. Unknown email and wrong
// password both map to ErrInvalidCredentials; the distinction exists only in
// the attempt log.
var (
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrSecurityBlock       = &Error{Code: CodeSecurityBlock, Message: "login temporarily blocked"}
	ErrInvalidCredentials  = &Error{Code: CodeInvalidCredentials, Message: "email or password incorrect"}
	ErrAccountDisabled     = &Error{Code: CodeAccountDisabled, Message: "account is disabled"}
	ErrInvalidRefreshToken = &Error{Code: CodeInvalidRefreshToken, Message: "invalid or expired refresh token"}
	ErrUserNotFound        = &Error{Code: CodeUserNotFound, Message: "user not found"}
	ErrTokenExpired        = &Error{Code: CodeTokenExpired, Message: "token expired"}
	ErrTokenInvalid        = &Error{Code: CodeTokenInvalid, Message: "invalid token"}
	ErrInternal            = &Error{Code: CodeInternal, Message: "internal error"}
)

func validationError(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

func securityBlock(reason string) *Error {
	return &Error{Code: CodeSecurityBlock, Message: reason}
}

// CodeOf returns the code of err. Untyped errors report CodeInternal; nil
// reports "".
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
