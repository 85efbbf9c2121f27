package credentials

import "github.com/jrsteele09/go-auth-client/users"

// absentMarker is the literal string some browser clients persisted instead of
// removing the refresh token entry. It is treated the same as an empty value.
const absentMarker = "undefined"

// Credentials is the single durable snapshot of a session: both tokens and
// the cached profile, written and read together so the stores cannot diverge.
type Credentials struct {
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	Profile      *users.User `json:"currentUser,omitempty"`
}

// IsEmpty reports whether the snapshot holds no session at all.
func (c *Credentials) IsEmpty() bool {
	return c == nil || (c.AccessToken == "" && c.RefreshToken == "" && c.Profile == nil)
}

// Store persists credentials behind one authoritative write/read path.
// All writes go through Save; partial updates of individual fields are not
// part of the contract.
type Store interface {
	Load() (*Credentials, error)
	Save(credentials *Credentials) error
	Clear() error
}
