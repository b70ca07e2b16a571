package gateway

import (
	"sync"
)

// TokenKey is the well-known key the bearer token is stored under.
const TokenKey = "auth_token"

// TokenStore persists the single bearer token of a client session.
// Get returns "" when no token is stored.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// SessionGuard owns the client's token and the reaction to a 401: the
// stored token is dropped and the re-authentication callback fires once,
// however many in-flight requests come back unauthorized.
type SessionGuard struct {
	mu             sync.Mutex
	store          TokenStore
	onUnauthorized func()
	signalled      bool
}

func NewSessionGuard(store TokenStore, onUnauthorized func()) *SessionGuard {
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	return &SessionGuard{store: store, onUnauthorized: onUnauthorized}
}

func (g *SessionGuard) Token() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.Get()
}

// SetToken stores a fresh token and re-arms the callback.
func (g *SessionGuard) SetToken(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Set(token); err != nil {
		return err
	}
	g.signalled = false
	return nil
}

// Clear removes the token without firing the callback (logout).
func (g *SessionGuard) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.Delete()
}

// Unauthorized reports a 401 for a request that was sent with token. It
// returns true for the single report that cleared the session and fired the
// callback. Reports for a token that is no longer stored, or for a request
// sent without one, are ignored.
func (g *SessionGuard) Unauthorized(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	current, err := g.store.Get()
	if err != nil || current != token || g.signalled {
		g.mu.Unlock()
		return false
	}
	_ = g.store.Delete()
	g.signalled = true
	g.mu.Unlock()

	g.onUnauthorized()
	return true
}
