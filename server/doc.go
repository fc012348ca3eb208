// Package server provides the HTTP server: Gin for routing behind a
// net/http ServeMux, wrapped with h2c for HTTP/2 cleartext.
//
// Server-level middleware (see server/middleware) wraps the whole mux, so
// the authentication filter and the authorization gate run once per request
// before Gin dispatches to a route:
//
//	srv := server.New(cfg.Server, log)
//	srv.ApplyMiddleware()
//	srv.Use(
//	    middleware.Authenticate(authCfg),
//	    middleware.Authorize(authz.DefaultPolicy(), log),
//	)
//	srv.RegisterDefaultEndpoints(name, registry.HealthAll)
//
// Built-in endpoints (server/endpoint): /health and /info.
package server
