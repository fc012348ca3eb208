// Package authctx carries the per-request security context.
//
// The authentication middleware resolves a bearer token to a Principal and
// stores it in the request context; handlers and authorization checks read it
// back. The Principal lives only as long as the request's context and is never
// shared through package-level state.
//
// Usage:
//
//	// Store (in middleware)
//	ctx = authctx.Set(ctx, principal)
//
//	// Retrieve (in handlers)
//	p, ok := authctx.Get(ctx)
//	p := authctx.MustGet(ctx) // panics if missing
package authctx

import (
	"context"
	"errors"
	"slices"
)

// Principal is an authenticated identity with its pre-resolved capabilities.
// It is immutable after construction.
type Principal struct {
	subject     string
	name        string
	role        string
	authorities []string
}

// NewPrincipal creates a Principal. authorities is copied.
func NewPrincipal(subject, name, role string, authorities ...string) Principal {
	return Principal{
		subject:     subject,
		name:        name,
		role:        role,
		authorities: slices.Clone(authorities),
	}
}

// Subject is the user identifier carried as the token subject (the email).
func (p Principal) Subject() string { return p.subject }

// Name is the display name.
func (p Principal) Name() string { return p.name }

// Role is the raw role label as stored on the user record.
func (p Principal) Role() string { return p.role }

// Authorities returns a copy of the capability labels, e.g. ["ROLE_ADMIN"].
func (p Principal) Authorities() []string { return slices.Clone(p.authorities) }

// HasAuthority reports whether the principal holds the capability label.
func (p Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.authorities, authority)
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

// principalKey is the single key used to store the principal in context.
var principalKey = contextKey{}

// Set stores the principal in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context.
// Returns false when the request is unauthenticated.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// MustGet retrieves the principal from the context.
// Panics if missing. Use in handlers behind an authenticated-only rule.
func MustGet(ctx context.Context) Principal {
	p, ok := Get(ctx)
	if !ok {
		panic("authctx: principal not found in context")
	}
	return p
}

// ErrNoPrincipal is returned when no principal is found in the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// GetOrError retrieves the principal from the context.
// Returns ErrNoPrincipal if missing.
func GetOrError(ctx context.Context) (Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
