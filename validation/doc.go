// Package validation validates request payloads with go-playground/validator
// struct tags and converts failures into INVALID_INPUT errors.
//
//	type LoginRequest struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
//
// Besides the built-in rules, "notblank" rejects whitespace-only strings.
package validation
