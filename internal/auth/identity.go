package auth

import (
	"context"
	"sync"
)

// IdentityProvider verifies a token issued by the external identity service
// and returns the phone number it was issued for.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, token string) (phone string, err error)
}

// StaticIdentityProvider is an in-memory IdentityProvider for local runs.
type StaticIdentityProvider struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewStaticIdentityProvider(tokens map[string]string) *StaticIdentityProvider {
	p := &StaticIdentityProvider{tokens: make(map[string]string, len(tokens))}
	for token, phone := range tokens {
		p.tokens[token] = phone
	}
	return p
}

// Register makes token verify as phone.
func (p *StaticIdentityProvider) Register(token, phone string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = phone
}

func (p *StaticIdentityProvider) VerifyIDToken(_ context.Context, token string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	phone, ok := p.tokens[token]
	if !ok || token == "" {
		return "", ErrInvalidCredential
	}
	return phone, nil
}

type contextKey string

const credentialContextKey contextKey = "credential"

// WithCredential stores the caller's bearer credential on ctx.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialContextKey, credential)
}

func CredentialFromContext(ctx context.Context) string {
	credential, _ := ctx.Value(credentialContextKey).(string)
	return credential
}
