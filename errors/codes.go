package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Identity and credential errors
const (
	// ErrCodeNotFound indicates no user matches the identifier.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeCredentialMismatch indicates the supplied credentials were rejected.
	ErrCodeCredentialMismatch ErrorCode = "CREDENTIAL_MISMATCH"
	// ErrCodeConflict indicates the identifier is already registered.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Token and access errors
const (
	// ErrCodeTokenInvalid indicates a bad signature, malformed encoding or expiry.
	ErrCodeTokenInvalid ErrorCode = "TOKEN_INVALID"
	// ErrCodeUnauthenticated indicates a protected route was called without identity.
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// ErrCodeForbidden indicates the identity lacks the required capability.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the request body failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeDatabaseError indicates a persistence failure.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
