package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/storefront/internal/catalog"
)

var (
	ErrCredentialNotFound = errors.New("credential does not match a known user")
	ErrInvalidCredential  = errors.New("credential is malformed or expired")
)

// CredentialResolver maps a bearer credential to a user ID. It is the
// boundary to whatever identity service issued the credential and returns
// ErrInvalidCredential for anything it cannot read.
type CredentialResolver interface {
	ResolveCredential(ctx context.Context, credential string) (string, error)
}

// UserDirectory looks users up by ID. *catalog.Store satisfies it.
type UserDirectory interface {
	User(id string) (catalog.User, bool)
}

// Gate answers "who is this" for a bearer credential.
type Gate struct {
	resolver CredentialResolver
	users    UserDirectory
}

func NewGate(resolver CredentialResolver, users UserDirectory) *Gate {
	return &Gate{resolver: resolver, users: users}
}

// Resolve returns the user behind credential. It fails with
// ErrInvalidCredential when the credential is empty, malformed or expired and
// with ErrCredentialNotFound when it names nobody in the directory.
func (g *Gate) Resolve(ctx context.Context, credential string) (*catalog.User, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrInvalidCredential
	}

	userID, err := g.resolver.ResolveCredential(ctx, credential)
	if err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	user, ok := g.users.User(userID)
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return &user, nil
}
