package domain

import "time"

// Actions and resources recorded by the auth core.
const (
	ActionLogin     = "login"
	ActionRefresh   = "refresh"
	ActionRevoke    = "revoke"
	ActionRevokeAll = "revoke_all"

	ResourceUser    = "user"
	ResourceToken   = "token"
	ResourceSession = "session"
)

// Event represents one append-only audit record.
type Event struct {
	ID         string
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	Details    string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
