package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-auth-client/authapi"
	"github.com/jrsteele09/go-auth-client/session/credentials"
)

// API is the wire-client surface the Manager depends on.
type API interface {
	Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.RegisterResponse, error)
	Login(ctx context.Context, req authapi.LoginRequest) (*authapi.LoginResponse, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*authapi.RefreshResponse, error)
}

var _ API = (*authapi.Client)(nil)

// Stores holds the credential persistence dependencies for the Manager.
// Credentials is the authoritative store; Cookie, when present, mirrors the
// access token for HTTP clients sharing the jar.
type Stores struct {
	Credentials credentials.Store
	Cookie      *credentials.CookieMirror
}

// Manager owns the session lifecycle: obtain, persist, expose and renew the
// token pair and the cached profile. It is the single writer to every
// credential store; consumers read snapshots and subscribe for changes.
type Manager struct {
	api    API
	stores Stores
	log    zerolog.Logger

	lock    sync.RWMutex
	current Session
	subs    map[int]func(Session)
	nextSub int

	renewals singleflight.Group
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager initializes a Manager with required dependencies.
func NewManager(api API, stores Stores, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] api client is required")
	}
	if stores.Credentials == nil {
		return nil, errors.New("[NewManager] credentials store is required")
	}

	manager := &Manager{
		api:    api,
		stores: stores,
		log:    zerolog.Nop(),
		subs:   make(map[int]func(Session)),
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// RegisterInput is the account-creation payload. Email format validation is
// the caller's job; the Manager only requires every field to be present.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginInput is the credential payload for LogIn.
type LoginInput struct {
	Email    string
	Password string
}

// SignUp creates an account and, on success, commits the issued token pair.
// The register response carries no profile, so the profile stays absent until
// the next login. A rejection or transport failure leaves no state behind.
func (m *Manager) SignUp(ctx context.Context, input RegisterInput) error {
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return MissingFieldsErr
	}

	resp, err := m.api.Register(ctx, authapi.RegisterRequest{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		return errors.Wrap(err, "[Manager.SignUp] register")
	}

	next := Session{
		AccessToken:   resp.AccessToken,
		RefreshToken:  resp.RefreshToken,
		Authenticated: true,
	}
	if err := m.commit(next); err != nil {
		return errors.Wrap(err, "[Manager.SignUp] commit")
	}

	m.log.Info().Str("email", input.Email).Msg("account registered")
	return nil
}

// LogIn exchanges credentials for a session. All stores are updated through
// the single commit point, and the authenticated flag is only observable once
// the new access token is in place.
func (m *Manager) LogIn(ctx context.Context, input LoginInput) error {
	resp, err := m.api.Login(ctx, authapi.LoginRequest{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.Wrap(err, "[Manager.LogIn] login")
	}

	next := Session{
		AccessToken:   resp.AccessToken,
		RefreshToken:  resp.RefreshToken,
		Profile:       resp.User,
		Authenticated: true,
	}
	if err := m.commit(next); err != nil {
		return errors.Wrap(err, "[Manager.LogIn] commit")
	}

	m.log.Info().Str("email", input.Email).Msg("logged in")
	return nil
}

// LogOut clears the session everywhere. It is a pure local operation: no
// network call, always succeeds, and is safe to call when already anonymous.
func (m *Manager) LogOut() {
	if m.stores.Cookie != nil {
		m.stores.Cookie.Clear()
	}
	if err := m.stores.Credentials.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear credential store on logout")
	}
	m.publish(Session{})
	m.log.Info().Msg("logged out")
}

// Refresh renews the access token. Concurrent calls collapse into a single
// in-flight request; every caller observes the same outcome. A failed renewal
// is non-destructive: the existing tokens are left untouched and the caller
// decides whether to force a re-login.
func (m *Manager) Refresh(ctx context.Context) error {
	_, err, _ := m.renewals.Do("refresh", func() (any, error) {
		return nil, m.renew(ctx)
	})
	return err
}

func (m *Manager) renew(ctx context.Context) error {
	current := m.Snapshot()

	refreshToken := current.RefreshToken
	if refreshToken == "" {
		stored, err := m.stores.Credentials.Load()
		if err != nil {
			m.log.Warn().Err(err).Msg("credential store unreadable during renewal")
		} else {
			refreshToken = stored.RefreshToken
		}
	}
	if refreshToken == "" {
		return MissingRefreshTokenErr
	}

	resp, err := m.api.Refresh(ctx, current.AccessToken, refreshToken)
	if err != nil {
		return errors.Wrap(err, "[Manager.Refresh] renewal")
	}

	next := m.Snapshot()
	next.AccessToken = resp.AccessToken
	next.RefreshToken = refreshToken
	next.Authenticated = true
	if err := m.commit(next); err != nil {
		return errors.Wrap(err, "[Manager.Refresh] commit")
	}

	m.log.Debug().Msg("access token renewed")
	return nil
}

// Rehydrate reconciles persisted credentials back into memory, once at
// startup. Best effort only: nothing is validated locally, a stale token is
// discovered when the server rejects it. Returns the resolved snapshot.
func (m *Manager) Rehydrate() Session {
	next := m.Snapshot()

	if next.AccessToken == "" && m.stores.Cookie != nil {
		next.AccessToken = m.stores.Cookie.Get()
	}

	stored, err := m.stores.Credentials.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("credential store unreadable during rehydrate")
	} else {
		if next.AccessToken == "" {
			next.AccessToken = stored.AccessToken
		}
		if next.RefreshToken == "" {
			next.RefreshToken = stored.RefreshToken
		}
		if next.Profile == nil {
			next.Profile = stored.Profile
		}
	}

	if next.RefreshToken != "" {
		next.Authenticated = true
	}

	m.publish(next)
	return next
}

// Snapshot returns a race-free copy of the current session.
func (m *Manager) Snapshot() Session {
	m.lock.RLock()
	defer m.lock.RUnlock()

	snapshot := m.current
	if snapshot.Profile != nil {
		profile := *snapshot.Profile
		snapshot.Profile = &profile
	}
	return snapshot
}

// Subscribe registers a change listener and returns its cancel function.
// Listeners are invoked after every published state change, outside the
// Manager's lock.
func (m *Manager) Subscribe(fn func(Session)) (cancel func()) {
	m.lock.Lock()
	defer m.lock.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.lock.Lock()
		defer m.lock.Unlock()
		delete(m.subs, id)
	}
}

// commit persists the credentials through the single storage write path and
// only then publishes the new in-memory state. The store write gates the
// authenticated flag, so an interrupted sequence can never leave the flag set
// without the credentials behind it.
func (m *Manager) commit(next Session) error {
	if err := m.stores.Credentials.Save(&credentials.Credentials{
		AccessToken:  next.AccessToken,
		RefreshToken: next.RefreshToken,
		Profile:      next.Profile,
	}); err != nil {
		return errors.Wrap(err, "credentials save")
	}
	if m.stores.Cookie != nil {
		m.stores.Cookie.Set(next.AccessToken)
	}
	m.publish(next)
	return nil
}

func (m *Manager) publish(next Session) {
	m.lock.Lock()
	m.current = next
	listeners := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.lock.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}
