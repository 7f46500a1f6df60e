// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the admin gate: a shared-secret check, not a
// user-identity check. The caller supplies the secret either as
// "Authorization: Bearer <secret>" or via the dedicated x-admin-key header,
// and it is compared byte-exactly against the single process-configured
// admin secret. The gate never produces a Principal.
package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
)

// adminKeyHeader is the dedicated header for supplying the admin secret.
const adminKeyHeader = "x-admin-key"

// RequireAdmin returns the admin gate bound to the configured secret. The
// secret is fixed at process start and never mutated. The gate is terminal
// on failure: no route logic executes once it rejects.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := BearerFrom(c)
		if provided == "" {
			provided = c.GetHeader(adminKeyHeader)
		}

		if provided == "" {
			abortWith(c, apperr.Authorization("Admin authentication required. Please provide admin key."))
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			abortWith(c, apperr.Authorization("Invalid admin credentials"))
			return
		}

		c.Next()
	}
}
