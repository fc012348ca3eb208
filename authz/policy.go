package authz

import (
	"net/http"
	"strings"

	"github.com/kbukum/loginauth/auth/authctx"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// Unauthenticated rejects a request that carries no identity.
	Unauthenticated
	// Forbidden rejects an identity lacking the required authority.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type accessKind int

const (
	kindPublic accessKind = iota
	kindAuthenticated
	kindAuthority
)

// Access is the requirement a rule places on the caller.
type Access struct {
	kind        accessKind
	authorities []string
}

// Public admits everyone, with or without identity.
func Public() Access { return Access{kind: kindPublic} }

// Authenticated admits any resolved identity.
func Authenticated() Access { return Access{kind: kindAuthenticated} }

// Authority admits identities holding any of the capability labels.
func Authority(labels ...string) Access {
	return Access{kind: kindAuthority, authorities: labels}
}

func (a Access) String() string {
	switch a.kind {
	case kindPublic:
		return "public"
	case kindAuthenticated:
		return "authenticated"
	default:
		return "authority(" + strings.Join(a.authorities, ",") + ")"
	}
}

// check evaluates the requirement against an optional principal.
func (a Access) check(p *authctx.Principal) Decision {
	if a.kind == kindPublic {
		return Allow
	}
	if p == nil {
		return Unauthenticated
	}
	if a.kind == kindAuthenticated {
		return Allow
	}
	for _, label := range a.authorities {
		if p.HasAuthority(label) {
			return Allow
		}
	}
	return Forbidden
}

// Rule binds a method and path pattern to an access requirement.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
}

// Matches reports whether the rule applies to the request.
func (r Rule) Matches(method, path string) bool {
	return MatchMethod(r.Method, method) && MatchPath(r.Pattern, path)
}

// Policy is an ordered rule list with a fallback requirement.
// A Policy is immutable once requests are being served.
type Policy struct {
	rules    []Rule
	fallback Access
}

// NewPolicy creates a Policy whose unmatched requests use fallback.
func NewPolicy(fallback Access, rules ...Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...), fallback: fallback}
}

// Allow appends a rule and returns the policy for chaining.
func (p *Policy) Allow(method, pattern string, access Access) *Policy {
	p.rules = append(p.rules, Rule{Method: method, Pattern: pattern, Access: access})
	return p
}

// Rules returns a copy of the configured rules.
func (p *Policy) Rules() []Rule { return append([]Rule(nil), p.rules...) }

// Decide evaluates the first matching rule for the request. principal is
// nil for unauthenticated requests.
func (p *Policy) Decide(method, path string, principal *authctx.Principal) Decision {
	for _, r := range p.rules {
		if r.Matches(method, path) {
			return r.Access.check(principal)
		}
	}
	return p.fallback.check(principal)
}

// DefaultPolicy is the service's access policy: login, registration and the
// operational endpoints are public, /admin requires ROLE_ADMIN and
// everything else requires an identity.
func DefaultPolicy() *Policy {
	return NewPolicy(Authenticated()).
		Allow(http.MethodPost, "/auth/login", Public()).
		Allow(http.MethodPost, "/auth/register", Public()).
		Allow(http.MethodGet, "/health", Public()).
		Allow(http.MethodGet, "/info", Public()).
		Allow(http.MethodOptions, "/**", Public()).
		Allow("*", "/admin/**", Authority("ROLE_ADMIN"))
}
