// Package account answers login and registration requests. It orchestrates
// the password verifier, the identity loader and the token service, and
// exposes the result over HTTP with gin handlers.
package account

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/loginauth/auth/identity"
	"github.com/kbukum/loginauth/auth/password"
	apperrors "github.com/kbukum/loginauth/errors"
	"github.com/kbukum/loginauth/logger"
	"github.com/kbukum/loginauth/observability"
	"github.com/kbukum/loginauth/user"
)

// Metric results for login and registration.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"notblank"`
	Role     string `json:"role" validate:"notblank"`
}

// Response is returned by a successful login or registration.
type Response struct {
	Name  string `json:"name"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// TokenIssuer issues a signed token for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

// Service implements login and registration.
type Service struct {
	users   user.Repository
	loader  *identity.Loader
	hasher  password.Hasher
	tokens  TokenIssuer
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records login and registration results on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service.
func NewService(users user.Repository, hasher password.Hasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		loader: identity.NewLoader(users),
		hasher: hasher,
		tokens: tokens,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("account")
	return s
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password return the same CredentialMismatch error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanLogin, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	log := s.log.WithContext(ctx)

	u, err := s.loader.Find(ctx, req.Email)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			log.Debug("Login rejected", map[string]interface{}{
				logger.FieldSubject: req.Email,
				logger.FieldReason:  "unknown_email",
			})
			return nil, s.reject(ctx, span, "unknown_email")
		}
		return nil, s.fail(ctx, span, s.metrics.RecordLogin, err)
	}

	if !password.Matches(s.hasher, req.Password, u.PasswordHash) {
		log.Debug("Login rejected", map[string]interface{}{
			logger.FieldSubject: req.Email,
			logger.FieldReason:  "password",
		})
		return nil, s.reject(ctx, span, "password")
	}

	resp, err := s.respond(u)
	if err != nil {
		return nil, s.fail(ctx, span, s.metrics.RecordLogin, err)
	}
	span.SetAttributes(observability.AttrSubject.String(u.Email), observability.AttrOutcome.String(ResultSuccess))
	s.metrics.RecordLogin(ctx, ResultSuccess)
	log.Info("User logged in", map[string]interface{}{logger.FieldSubject: u.Email})
	return resp, nil
}

// Register creates a user and issues its first token. An email that is
// already registered returns a Conflict error.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanRegister, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	log := s.log.WithContext(ctx)

	_, err := s.loader.Find(ctx, req.Email)
	switch {
	case err == nil:
		return nil, s.conflict(ctx, span, req.Email)
	case !errors.Is(err, identity.ErrNotFound):
		return nil, s.fail(ctx, span, s.metrics.RecordRegistration, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			s.metrics.RecordRegistration(ctx, ResultRejected)
			span.SetAttributes(observability.AttrOutcome.String(ResultRejected), observability.AttrReason.String("password_length"))
			return nil, apperrors.InvalidInput("password must be at most 72 bytes")
		}
		return nil, s.fail(ctx, span, s.metrics.RecordRegistration, err)
	}

	u := &user.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return nil, s.conflict(ctx, span, req.Email)
		}
		return nil, s.fail(ctx, span, s.metrics.RecordRegistration, err)
	}

	resp, err := s.respond(u)
	if err != nil {
		return nil, s.fail(ctx, span, s.metrics.RecordRegistration, err)
	}
	span.SetAttributes(observability.AttrSubject.String(u.Email), observability.AttrOutcome.String(ResultSuccess))
	s.metrics.RecordRegistration(ctx, ResultSuccess)
	log.Info("User registered", map[string]interface{}{
		logger.FieldSubject: u.Email,
		logger.FieldRole:    u.Role,
	})
	return resp, nil
}

func (s *Service) respond(u *user.User) (*Response, error) {
	tok, _, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	return &Response{Name: u.Name, Token: tok, Role: u.Role}, nil
}

func (s *Service) reject(ctx context.Context, span trace.Span, reason string) error {
	span.SetAttributes(observability.AttrOutcome.String(ResultRejected), observability.AttrReason.String(reason))
	s.metrics.RecordLogin(ctx, ResultRejected)
	return apperrors.CredentialMismatch()
}

func (s *Service) conflict(ctx context.Context, span trace.Span, email string) error {
	s.log.WithContext(ctx).Debug("Registration rejected", map[string]interface{}{
		logger.FieldSubject: email,
		logger.FieldReason:  "duplicate",
	})
	span.SetAttributes(observability.AttrOutcome.String(ResultConflict))
	s.metrics.RecordRegistration(ctx, ResultConflict)
	return apperrors.Conflict("")
}

func (s *Service) fail(ctx context.Context, span trace.Span, record func(context.Context, string), err error) error {
	s.log.WithContext(ctx).Error("Account operation failed", map[string]interface{}{
		logger.FieldError: err.Error(),
	})
	observability.SetSpanError(ctx, err)
	span.SetAttributes(observability.AttrOutcome.String(ResultError))
	record(ctx, ResultError)
	return apperrors.Internal(err)
}
