package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/loginauth/auth/authctx"
	"github.com/kbukum/loginauth/auth/identity"
	"github.com/kbukum/loginauth/auth/token"
	"github.com/kbukum/loginauth/logger"
	"github.com/kbukum/loginauth/observability"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// PrincipalLoader resolves a token subject into a Principal.
type PrincipalLoader interface {
	Load(ctx context.Context, id string) (authctx.Principal, error)
}

// AuthConfig configures the authentication filter.
type AuthConfig struct {
	Tokens     TokenValidator
	Identities PrincipalLoader
	Log        *logger.Logger
	Metrics    *observability.Metrics
}

// Authentication outcomes recorded on spans and metrics.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeAnonymous     = "anonymous"
	OutcomeRejected      = "rejected"
)

type filteredKey struct{}

// Authenticate returns the request authentication filter. For each request it
//
//  1. reads "Authorization: Bearer <token>"; absent or malformed headers
//     leave the request anonymous,
//  2. validates the token; invalid, tampered or expired tokens leave the
//     request anonymous,
//  3. resolves the subject; an unknown subject leaves the request anonymous,
//  4. stores the Principal in the request context.
//
// The filter never writes a response. Rejecting anonymous requests is the
// job of Authorize.
func Authenticate(cfg AuthConfig) Middleware {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}
	log = log.WithComponent("authn")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if ctx.Value(filteredKey{}) != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx = context.WithValue(ctx, filteredKey{}, true)

			ctx, span := observability.StartSpan(ctx, observability.SpanAuthenticate,
				trace.WithSpanKind(trace.SpanKindInternal))
			principal, outcome, reason := authenticate(ctx, cfg, log, r.Header.Get("Authorization"))
			span.SetAttributes(observability.AttrOutcome.String(outcome))
			if reason != "" {
				span.SetAttributes(observability.AttrReason.String(reason))
			}
			if principal != nil {
				span.SetAttributes(observability.AttrSubject.String(principal.Subject()))
				ctx = authctx.Set(ctx, *principal)
				reportSubject(ctx, *principal)
			}
			span.End()
			cfg.Metrics.RecordAuthentication(ctx, outcome)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(ctx context.Context, cfg AuthConfig, log *logger.Logger, header string) (*authctx.Principal, string, string) {
	raw, ok := BearerToken(header)
	if !ok {
		if header != "" {
			log.WithContext(ctx).Debug("Malformed authorization header", map[string]interface{}{
				logger.FieldReason: "header",
			})
			return nil, OutcomeRejected, "header"
		}
		return nil, OutcomeAnonymous, ""
	}

	claims, err := cfg.Tokens.Validate(raw)
	if err != nil {
		reason := token.Reason(err)
		log.WithContext(ctx).Debug("Token rejected", map[string]interface{}{
			logger.FieldReason: reason,
		})
		return nil, OutcomeRejected, reason
	}

	p, err := cfg.Identities.Load(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			log.WithContext(ctx).Debug("Token subject no longer exists", map[string]interface{}{
				logger.FieldSubject: claims.Subject,
				logger.FieldReason:  "subject",
			})
			return nil, OutcomeRejected, "subject"
		}
		log.WithContext(ctx).Error("Identity lookup failed", map[string]interface{}{
			logger.FieldSubject: claims.Subject,
			logger.FieldError:   err.Error(),
		})
		observability.SetSpanError(ctx, err)
		return nil, OutcomeRejected, "lookup"
	}
	return &p, OutcomeAuthenticated, ""
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is case-insensitive and must be followed by exactly one space
// and a non-empty token without further spaces.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := header[len(prefix):]
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return "", false
	}
	return tok, true
}
