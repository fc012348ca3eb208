// Package identity resolves a user identifier into an authenticated
// Principal.
//
// The Loader is used twice per flow: by the login handler to look a user up
// by email, and by the authentication middleware to turn a token subject back
// into a live identity. A token whose subject no longer resolves is treated
// as unauthenticated.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/loginauth/auth/authctx"
	"github.com/kbukum/loginauth/user"
)

// AuthorityPrefix namespaces role labels as capability labels.
const AuthorityPrefix = "ROLE_"

// ErrNotFound is returned when no user matches the identifier.
var ErrNotFound = errors.New("identity: user not found")

// Loader loads identities from a user repository.
type Loader struct {
	users user.Repository
}

// NewLoader creates a Loader over the repository.
func NewLoader(users user.Repository) *Loader {
	return &Loader{users: users}
}

// Find returns the full user record for the identifier.
func (l *Loader) Find(ctx context.Context, id string) (*user.User, error) {
	u, err := l.users.FindByEmail(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("identity: load %q: %w", id, err)
	}
	return u, nil
}

// Load resolves the identifier into a Principal.
func (l *Loader) Load(ctx context.Context, id string) (authctx.Principal, error) {
	u, err := l.Find(ctx, id)
	if err != nil {
		return authctx.Principal{}, err
	}
	return PrincipalOf(u), nil
}

// PrincipalOf builds the Principal for a user record.
func PrincipalOf(u *user.User) authctx.Principal {
	var authorities []string
	if a := Authority(u.Role); a != "" {
		authorities = append(authorities, a)
	}
	return authctx.NewPrincipal(u.Email, u.Name, u.Role, authorities...)
}

// Authority maps a role label to its capability label, e.g. "admin" to
// "ROLE_ADMIN". An empty role has no authority.
func Authority(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return ""
	}
	return AuthorityPrefix + strings.ToUpper(role)
}
