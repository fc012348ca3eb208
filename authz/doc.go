// Package authz decides whether a request may reach its handler.
//
// A Policy is an ordered list of rules, each binding a method and path
// pattern to an Access requirement. The first matching rule wins; requests
// that match no rule fall back to the policy default.
//
// Patterns support segment wildcards:
//
//   - "/auth/login"  matches only "/auth/login"
//   - "/users/*"    matches exactly one segment below /users
//   - "/admin/**"   matches /admin and everything below it
//
// Usage:
//
//	policy := authz.NewPolicy(authz.Authenticated()).
//	    Allow(http.MethodPost, "/auth/login", authz.Public()).
//	    Allow("*", "/admin/**", authz.Authority("ROLE_ADMIN"))
//
//	switch policy.Decide(r.Method, r.URL.Path, principal) { ... }
//
// This package is standard library only.
package authz
