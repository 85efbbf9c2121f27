package token

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultRefreshTokenTTL = 30 * 24 * time.Hour

var RefreshTokenNotFoundErr = errors.New("invalid refresh token")

type refreshEntry struct {
	userID string
	iat    time.Time
}

// RefreshStore holds the server-side state of issued refresh tokens. Tokens
// handed to clients are opaque random strings; everything else stays here.
// One live refresh token per user.
type RefreshStore struct {
	ttl     time.Duration
	nowTime func() time.Time

	lock   sync.Mutex
	tokens map[string]refreshEntry
}

// RefreshStoreOption defines a function type to modify the RefreshStore instance.
type RefreshStoreOption func(*RefreshStore)

// WithRefreshTTL overrides the default refresh-token lifetime.
func WithRefreshTTL(ttl time.Duration) RefreshStoreOption {
	return func(rs *RefreshStore) {
		rs.ttl = ttl
	}
}

// WithRefreshNowTime sets the now time function (primarily for testing)
func WithRefreshNowTime(nowFunc func() time.Time) RefreshStoreOption {
	return func(rs *RefreshStore) {
		rs.nowTime = nowFunc
	}
}

func NewRefreshStore(options ...RefreshStoreOption) *RefreshStore {
	store := &RefreshStore{
		ttl:     defaultRefreshTokenTTL,
		nowTime: time.Now,
		tokens:  make(map[string]refreshEntry),
	}
	for _, opt := range options {
		opt(store)
	}
	return store
}

// Issue mints a refresh token for the user, revoking any previous one. Expired
// entries are swept opportunistically.
func (rs *RefreshStore) Issue(userID string) string {
	rs.lock.Lock()
	defer rs.lock.Unlock()

	now := rs.nowTime()
	for token, entry := range rs.tokens {
		if now.Sub(entry.iat) > rs.ttl || entry.userID == userID {
			delete(rs.tokens, token)
		}
	}

	token := uuid.New().String()
	rs.tokens[token] = refreshEntry{userID: userID, iat: now}
	return token
}

// Lookup resolves a refresh token to its user. Expired or unknown tokens
// return RefreshTokenNotFoundErr.
func (rs *RefreshStore) Lookup(token string) (string, error) {
	rs.lock.Lock()
	defer rs.lock.Unlock()

	entry, ok := rs.tokens[token]
	if !ok {
		return "", RefreshTokenNotFoundErr
	}
	if rs.nowTime().Sub(entry.iat) > rs.ttl {
		delete(rs.tokens, token)
		return "", RefreshTokenNotFoundErr
	}
	return entry.userID, nil
}

// Revoke removes a refresh token. Revoking an unknown token is not an error.
func (rs *RefreshStore) Revoke(token string) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	delete(rs.tokens, token)
}
