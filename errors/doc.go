// Package errors provides the error taxonomy of the authentication service.
//
// Every failure that can reach an HTTP caller is an *AppError carrying a
// machine-readable code, a client-safe message and the HTTP status it maps to.
// The underlying cause is kept for logging and errors.Is/As but is never
// serialised into a response.
package errors
