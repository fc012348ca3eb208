package middleware

import (
	"net/http"

	"github.com/kbukum/loginauth/auth/authctx"
	"github.com/kbukum/loginauth/authz"
	apperrors "github.com/kbukum/loginauth/errors"
	"github.com/kbukum/loginauth/logger"
)

// Authorize rejects requests the policy does not allow. It must run after
// Authenticate. Anonymous requests to protected routes get 401, identities
// without the required authority get 403.
func Authorize(policy *authz.Policy, log *logger.Logger) Middleware {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("authz")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var principal *authctx.Principal
			if p, ok := authctx.Get(r.Context()); ok {
				principal = &p
			}

			switch policy.Decide(r.Method, r.URL.Path, principal) {
			case authz.Allow:
				next.ServeHTTP(w, r)
			case authz.Unauthenticated:
				w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
				writeError(w, apperrors.Unauthenticated())
			default:
				log.WithContext(r.Context()).Debug("Access denied", map[string]interface{}{
					logger.FieldSubject: principal.Subject(),
					logger.FieldRole:    principal.Role(),
					"path":              r.URL.Path,
				})
				writeError(w, apperrors.Forbidden(""))
			}
		})
	}
}
