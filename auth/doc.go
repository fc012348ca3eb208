// Package auth provides the authentication building blocks of the service.
//
// Subpackages:
//
//   - auth/password  - Password hashing and verification (bcrypt, argon2id)
//   - auth/token     - Signed bearer token issuance and validation
//   - auth/authctx   - Request-scoped security context (Principal)
//   - auth/identity  - Loads a user record into a Principal
//
// The top-level Config composes the subpackage configs:
//
//	auth:
//	  token:
//	    secret: "change-me"
//	    method: "HS256"
//	    ttl: "2h"
//	  password:
//	    algorithm: "bcrypt"
//	    bcrypt_cost: 10
//
// The signing secret can also be supplied as AUTH_TOKEN_SECRET.
package auth
