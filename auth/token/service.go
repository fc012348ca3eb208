// Package token issues and validates signed, stateless bearer tokens (JWT).
//
// A token carries only the registered claims the service needs: the subject
// (the user identifier), issued-at and expiry. No server-side record is kept;
// validity is decided purely by signature and expiry at validation time.
//
// Usage:
//
//	svc, err := token.NewService(cfg)
//	signed, expiresAt, err := svc.Issue("a@x.com")
//	claims, err := svc.Validate(signed)
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Validation failures. Every one of them matches ErrInvalid via errors.Is;
// the finer sentinels only exist so callers can log the reason.
var (
	ErrInvalid   = errors.New("token: invalid")
	ErrMalformed = fmt.Errorf("%w: malformed", ErrInvalid)
	ErrSignature = fmt.Errorf("%w: signature mismatch", ErrInvalid)
	ErrExpired   = fmt.Errorf("%w: expired", ErrInvalid)
	ErrClaims    = fmt.Errorf("%w: claims rejected", ErrInvalid)
)

// Claims is the claim set embedded in every token.
type Claims struct {
	gojwt.RegisteredClaims
}

// Service provides token issuance and validation.
type Service struct {
	cfg       Config
	method    gojwt.SigningMethod
	signKey   interface{}
	verifyKey interface{}
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issued-at, expiry and
// validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service, loading key material once.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	signKey, verifyKey, err := cfg.keys()
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	s := &Service{
		cfg:       cfg,
		method:    cfg.signingMethod(),
		signKey:   signKey,
		verifyKey: verifyKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.cfg.TTL }

// Issue creates a signed token for subject with issued-at = now and
// expiry = now + TTL. It returns the encoded token and its expiry.
func (s *Service) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token: subject is required")
	}
	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)

	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
	}
	if s.cfg.Issuer != "" {
		claims.Issuer = s.cfg.Issuer
	}
	if s.cfg.Audience != "" {
		claims.Audience = gojwt.ClaimStrings{s.cfg.Audience}
	}

	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate decodes tokenString, verifies its signature against the service
// key and algorithm, and rejects it if expiry <= now or subject is missing.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc, s.parserOptions()...)
	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid {
		return nil, ErrInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrClaims)
	}
	return claims, nil
}

// keyFunc refuses any token whose header algorithm differs from the
// configured one, including "none".
func (s *Service) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
	}
	return s.verifyKey, nil
}

func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithIssuedAt(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if s.cfg.Audience != "" {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience))
	}
	return opts
}

// classify maps golang-jwt errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid), errors.Is(err, gojwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrSignature, err)
	case errors.Is(err, gojwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrClaims, err)
	}
}

// Reason returns a short label for a validation error, suitable for logs.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrSignature):
		return "signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrClaims):
		return "claims"
	default:
		return "invalid"
	}
}
