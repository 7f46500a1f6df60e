// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the bearer-token identity gate. Token verification is
// delegated to the identity provider; on success a Principal is attached to
// the request context for downstream handlers. Provider rejection reasons
// are never leaked to the caller.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
)

// principalKey is the Gin context key under which the Principal is stored.
const principalKey = "principal"

// TokenVerifier verifies an opaque bearer token with the identity provider
// and returns the principal it belongs to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (domain.Principal, error)
}

// RequireAuth returns the identity-bearer gate. It requires an
// "Authorization: Bearer <token>" header, delegates verification to the
// provider, and attaches the resulting Principal to the request. The gate is
// terminal on failure: no route logic executes once it rejects.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWith(c, apperr.Authentication("No valid authorization token provided"))
			return
		}

		principal, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			// The provider's rejection reason stays server-side.
			abortWith(c, apperr.Authentication("Invalid or expired token"))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal attached by RequireAuth.
// ok is false on routes where the gate did not run.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// BearerFrom extracts the raw bearer token from the Authorization header,
// returning "" when absent or malformed.
func BearerFrom(c *gin.Context) string {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	return token
}

// bearerToken splits "Bearer <token>" and reports whether the header was
// well-formed and non-empty.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// abortWith records the error for the terminal classifier and stops the
// pipeline.
func abortWith(c *gin.Context, err error) {
	c.Error(err) //nolint:errcheck
	c.Abort()
}
