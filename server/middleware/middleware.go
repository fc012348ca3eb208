// Package middleware holds the server-level net/http middleware: the
// authentication filter, the authorization gate, and the operational
// wrappers (recovery, request IDs, logging, CORS, body limits).
//
// Middleware is applied around the whole mux, so it runs once per request
// before any route-specific logic.
package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kbukum/loginauth/errors"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// writeError renders an AppError with the standard JSON envelope.
func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err.HTTPStatus)
	_ = json.NewEncoder(w).Encode(err.ToResponse())
}
