package auth

import (
	"studyprep/backend/internal/device"
	userdomain "studyprep/backend/internal/user/domain"
)

// LoginInput carries the credentials and client metadata of one login call.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
	Device     device.Info
	IPAddress  string
	UserAgent  string
}

// RefreshInput carries the raw refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
	IPAddress    string
	UserAgent    string
}

// LogoutInput identifies the session to revoke. RefreshToken is optional; when
// present the matching token is retired alongside the session.
type LogoutInput struct {
	UserID       string
	SessionID    string
	RefreshToken string
	IPAddress    string
	UserAgent    string
}

// LogoutAllInput identifies the user whose sessions and tokens are all revoked.
type LogoutAllInput struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// UserInfo is the caller-facing projection of a user. It never carries the
// password hash.
type UserInfo struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
}

func userInfo(u *userdomain.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: string(u.Role)}
}

// LoginResult is the outcome of a successful login. ExpiresIn is the access
// token lifetime in seconds. SecurityWarning is set when the login succeeded
// from a device or address the account has not used before.
type LoginResult struct {
	AccessToken            string
	RefreshToken           string
	ExpiresIn              int
	User                   UserInfo
	RequiresPasswordChange bool
	SecurityWarning        string
}

// RefreshResult is the outcome of a successful rotation: a fresh token pair
// for the same lineage.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         UserInfo
}
