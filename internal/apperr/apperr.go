// Package apperr defines the closed set of operational errors used across
// the application. Every failure that crosses a component boundary is either
// one of these values or is classified into one by the HTTP error handler
// before reaching the wire.
//
// Each constructor fixes the HTTP status and a default message; callers may
// override the message but never the status. Values are immutable after
// construction and are matched by callers with errors.As.
package apperr

import "net/http"

// Kind discriminates the members of the error taxonomy.
type Kind string

// The closed set of error kinds. ServiceUnavailable is the only retriable
// kind; Internal is the only non-operational one (it signals "should not
// normally happen" and is the bucket for unexpected failures).
const (
	KindValidation         Kind = "validation"
	KindAuthentication     Kind = "authentication"
	KindAuthorization      Kind = "authorization"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInternal           Kind = "internal"
	KindServiceUnavailable Kind = "service_unavailable"
)

// Error is an operational error carrying a fixed HTTP status, a
// human-readable message, and a kind discriminator. Retriable is true only
// for ServiceUnavailable values.
type Error struct {
	Status      int
	Kind        Kind
	Message     string
	Retriable   bool
	operational bool
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Operational reports whether the error represents an expected,
// recoverable-by-the-caller condition. Only Internal errors are
// non-operational.
func (e *Error) Operational() bool { return e.operational }

// Code returns the stable, machine-readable code emitted in the wire error
// envelope (e.g. "not_found").
func (e *Error) Code() string { return string(e.Kind) }

func newError(status int, kind Kind, msg string, retriable, operational bool) *Error {
	return &Error{
		Status:      status,
		Kind:        kind,
		Message:     msg,
		Retriable:   retriable,
		operational: operational,
	}
}

// override returns msg[0] when provided, def otherwise.
func override(def string, msg []string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return def
}

// Validation returns a 400 error for a caller-fixable input problem.
func Validation(msg string) *Error {
	return newError(http.StatusBadRequest, KindValidation, msg, false, true)
}

// Authentication returns a 401 error for a missing or invalid identity.
func Authentication(msg ...string) *Error {
	return newError(http.StatusUnauthorized, KindAuthentication,
		override("Authentication failed", msg), false, true)
}

// Authorization returns a 403 error for a known identity lacking permission
// or an invalid shared secret.
func Authorization(msg ...string) *Error {
	return newError(http.StatusForbidden, KindAuthorization,
		override("Access denied", msg), false, true)
}

// NotFound returns a 404 error for a missing resource.
func NotFound(msg ...string) *Error {
	return newError(http.StatusNotFound, KindNotFound,
		override("Resource not found", msg), false, true)
}

// Conflict returns a 409 error for a uniqueness violation.
func Conflict(msg string) *Error {
	return newError(http.StatusConflict, KindConflict, msg, false, true)
}

// Internal returns a 500 error for an unexpected condition. It is the only
// non-operational member of the taxonomy.
func Internal(msg ...string) *Error {
	return newError(http.StatusInternalServerError, KindInternal,
		override("Internal server error", msg), false, false)
}

// ServiceUnavailable returns a retriable 503 error for a transport or
// timeout problem with a downstream collaborator.
func ServiceUnavailable(msg ...string) *Error {
	return newError(http.StatusServiceUnavailable, KindServiceUnavailable,
		override("Service temporarily unavailable", msg), true, true)
}
