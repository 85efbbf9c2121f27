package session

import "github.com/jrsteele09/go-auth-client/users"

// State describes where a session sits in its lifecycle.
type State string

const (
	// StateAnonymous means no credentials are held anywhere.
	StateAnonymous State = "anonymous"
	// StateRenewing means a refresh token exists but the access token is
	// currently absent, typically right after a reload.
	StateRenewing State = "renewing"
	// StateAuthenticated means an access token is held.
	StateAuthenticated State = "authenticated"
)

// Session is an immutable snapshot of the authenticated browsing context:
// both credentials, the cached profile, and the derived authenticated flag.
type Session struct {
	AccessToken   string
	RefreshToken  string
	Profile       *users.User
	Authenticated bool
}

// State derives the lifecycle state. The refresh token is the durable source
// of truth for "has a session"; a missing access token alone does not end it.
func (s Session) State() State {
	if s.RefreshToken == "" && !s.Authenticated {
		return StateAnonymous
	}
	if s.AccessToken == "" {
		return StateRenewing
	}
	return StateAuthenticated
}
