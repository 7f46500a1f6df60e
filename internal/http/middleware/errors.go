// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the terminal error classifier. Whatever failure value
// propagated from validation, a gate, a handler, or a downstream collaborator
// call ends up here and is mapped to exactly one response envelope.
//
// Classification is an explicit, ordered rule list; first match wins:
//
//  1. timeout signals       → 503 (retriable)
//  2. network/transport     → 503 (retriable)
//  3. known operational     → the error's own status and message
//  4. anything else         → 500, message depends on environment
//
// Timeout and network detection run before the operational check on purpose:
// a transport failure wrapped in an operational-looking error is still a
// connectivity problem and must be reported as one. Message substring checks
// exist because collaborator failures are not guaranteed to arrive as
// structured errors.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
)

// User-facing messages for retriable connectivity failures.
const (
	msgTimeout = "Connection timed out. Please try again."
	msgNetwork = "Unable to connect to the service. Please check your connection and try again."
)

// networkSubstrings are lower-case fragments that mark a free-text error
// message as a transport failure. Checked only after the timeout rule.
var networkSubstrings = []string{
	"fetch failed",
	"fetch",
	"network",
	"econnrefused",
	"enotfound",
	"connection",
}

// timeoutSubstrings mark a free-text error message as a timeout.
var timeoutSubstrings = []string{"timeout", "timed out"}

// connErrnos are low-level socket errnos treated as network failures.
var connErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
}

// ErrorHandler returns the terminal classification middleware. It must be
// installed before any middleware or handler that records errors via
// c.Error. production controls disclosure for the unclassified bucket: when
// true the caller sees a generic message and the detail stays in the logs.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors[0].Err

		switch {
		case isTimeout(err):
			emit(c, http.StatusServiceUnavailable, msgTimeout,
				string(apperr.KindServiceUnavailable))

		case isNetwork(err):
			emit(c, http.StatusServiceUnavailable, msgNetwork,
				string(apperr.KindServiceUnavailable))

		default:
			var ae *apperr.Error
			if errors.As(err, &ae) {
				emit(c, ae.Status, ae.Message, ae.Code())
				return
			}

			// Unclassified: keep full detail server-side for diagnosis.
			LoggerFrom(c).Error().
				Err(err).
				Str("type", errType(err)).
				Str("request_id", RequestIDFrom(c)).
				Msg("unexpected error")

			msg := "Internal server error"
			if !production {
				msg = err.Error()
			}
			emit(c, http.StatusInternalServerError, msg,
				string(apperr.KindInternal))
		}
	}
}

// emit writes the terminal error envelope and records it in the error
// metrics.
func emit(c *gin.Context, status int, message, code string) {
	ObserveClassifiedError(code)
	respond.Error(c, status, message, code, nil)
}

// isTimeout reports whether err carries any timeout signal: a net.Error
// timeout, a deadline-exceeded sentinel, an OS-level timeout, or the words
// "timeout"/"timed out" anywhere in the message (case-insensitive).
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range timeoutSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// isNetwork reports whether err carries a transport-failure signal: a known
// connection errno, a net/url transport error type, or one of the known
// message fragments (case-insensitive). Timeouts are handled earlier.
func isNetwork(err error) bool {
	if err == nil {
		return false
	}
	for _, errno := range connErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range networkSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// errType names the dynamic type of err (and its cause, when wrapped) for
// diagnostic logs.
func errType(err error) string {
	if err == nil {
		return ""
	}
	name := fmt.Sprintf("%T", err)
	if cause := errors.Unwrap(err); cause != nil {
		name += fmt.Sprintf(" (wraps %T)", cause)
	}
	return name
}
