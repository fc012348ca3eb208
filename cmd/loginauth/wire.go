package main

import (
	"context"
	"fmt"

	"github.com/kbukum/loginauth/account"
	"github.com/kbukum/loginauth/auth/identity"
	"github.com/kbukum/loginauth/auth/password"
	"github.com/kbukum/loginauth/auth/token"
	"github.com/kbukum/loginauth/authz"
	"github.com/kbukum/loginauth/bootstrap"
	"github.com/kbukum/loginauth/database"
	"github.com/kbukum/loginauth/logger"
	"github.com/kbukum/loginauth/observability"
	"github.com/kbukum/loginauth/server"
	"github.com/kbukum/loginauth/server/endpoint"
	"github.com/kbukum/loginauth/server/middleware"
	"github.com/kbukum/loginauth/user"
)

const meterName = "github.com/kbukum/loginauth"

// deps are the collaborators the HTTP surface is built from.
type deps struct {
	users   user.Repository
	health  endpoint.HealthChecker
	metrics *observability.Metrics
	log     *logger.Logger
}

// newServer builds the HTTP server with the full middleware chain and
// every route registered. The signing key is loaded here, once.
func newServer(cfg *AppConfig, d deps) (*server.Server, error) {
	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.Auth.Password)

	srv := server.New(cfg.Server, d.log)
	srv.ApplyMiddleware()
	srv.Use(
		middleware.Authenticate(middleware.AuthConfig{
			Tokens:     tokens,
			Identities: identity.NewLoader(d.users),
			Log:        d.log,
			Metrics:    d.metrics,
		}),
		middleware.Authorize(authz.DefaultPolicy(), d.log),
	)

	svc := account.NewService(d.users, hasher, tokens,
		account.WithLogger(d.log),
		account.WithMetrics(d.metrics),
	)
	account.NewHandler(svc).Routes(srv.GinEngine())
	srv.RegisterDefaultEndpoints(cfg.Name, d.health)
	return srv, nil
}

// repository picks the user store: the database when enabled, otherwise
// an in-process map that does not survive restarts.
func repository(db *database.Component, log *logger.Logger) user.Repository {
	if conn := db.DB(); conn != nil {
		return user.NewGormRepository(conn.GormDB)
	}
	log.Warn("Database disabled, users are kept in memory")
	return user.NewMemoryRepository()
}

// configure is the composition root, run once infrastructure is up.
func configure(db *database.Component) func(context.Context, *bootstrap.App[*AppConfig]) error {
	return func(_ context.Context, a *bootstrap.App[*AppConfig]) error {
		metrics, err := observability.NewMetrics(observability.Meter(meterName))
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}

		srv, err := newServer(a.Cfg, deps{
			users:   repository(db, a.Logger),
			health:  a.Components.HealthAll,
			metrics: metrics,
			log:     a.Logger,
		})
		if err != nil {
			return err
		}
		for _, r := range srv.GinEngine().Routes() {
			a.Summary.TrackRoute(r.Method, r.Path)
		}
		return a.RegisterComponent(server.NewComponent(srv))
	}
}

// initTelemetry installs the trace and meter providers and flushes them on
// shutdown.
func initTelemetry(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
	cfg := a.Cfg.Observability
	res := a.Cfg.resource()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing, res, a.Logger)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	shutdownMeter, err := observability.InitMeter(ctx, cfg.Metrics, res, a.Logger)
	if err != nil {
		_ = shutdownTracer(ctx)
		return fmt.Errorf("metrics: %w", err)
	}
	a.OnStop(
		func(ctx context.Context) error { return shutdownMeter(ctx) },
		func(ctx context.Context) error { return shutdownTracer(ctx) },
	)
	return nil
}
