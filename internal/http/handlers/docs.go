package handlers

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Docs serves the self-documenting API index: every v1 endpoint with its
// method, path, auth requirements, and the shared response conventions.
// The payload is served raw (no envelope) like the root banner.
func Docs(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		baseURL := scheme + "://" + c.Request.Host + path.Join("/", basePath, "v1")

		c.JSON(http.StatusOK, gin.H{
			"apiVersion": "v1",
			"documentation": gin.H{
				"base": gin.H{
					"title":       "HHTrails API Documentation",
					"version":     "1.0.0",
					"description": "RESTful API for HHTrails tour planning platform with authentication",
					"baseUrl":     baseURL,
				},
				"authentication": gin.H{
					"user": gin.H{
						"type":        "Bearer Token",
						"header":      "Authorization: Bearer <access_token>",
						"description": "Account endpoints require the access token from signin in the Authorization header.",
					},
					"admin": gin.H{
						"type":        "Shared secret",
						"header":      "Authorization: Bearer <admin_key> or x-admin-key: <admin_key>",
						"description": "Write operations on tours and blogs require the admin key.",
					},
				},
				"endpoints": gin.H{
					"auth": []gin.H{
						{"method": "POST", "path": "/auth/signup", "description": "Register a new user with email and password", "authentication": false},
						{"method": "POST", "path": "/auth/signin", "description": "Sign in with email and password", "authentication": false},
						{"method": "POST", "path": "/auth/google", "description": "Authenticate with Google ID token", "authentication": false},
						{"method": "GET", "path": "/auth/google/url", "description": "Get Google OAuth authorization URL", "authentication": false},
						{"method": "POST", "path": "/auth/refresh", "description": "Refresh access token using refresh token", "authentication": false},
						{"method": "POST", "path": "/auth/password/reset-request", "description": "Request password reset email", "authentication": false},
						{"method": "POST", "path": "/auth/password/reset", "description": "Reset password with the token from the reset link", "authentication": false},
						{"method": "POST", "path": "/auth/signout", "description": "Sign out current user", "authentication": true},
						{"method": "GET", "path": "/auth/me", "description": "Get current authenticated user profile", "authentication": true},
					},
					"tours": []gin.H{
						{"method": "GET", "path": "/tours", "description": "List tours with region/season/types/isCustom filters and pagination", "authentication": false},
						{"method": "GET", "path": "/tours/:id", "description": "Get a single tour", "authentication": false},
						{"method": "POST", "path": "/tours", "description": "Create a tour", "admin": true},
						{"method": "PUT", "path": "/tours/:id", "description": "Update a tour (at least one field)", "admin": true},
						{"method": "DELETE", "path": "/tours/:id", "description": "Delete a tour", "admin": true},
					},
					"tourDetails": []gin.H{
						{"method": "GET", "path": "/tours/:id/details", "description": "Get extended details for a tour", "authentication": false},
						{"method": "POST", "path": "/tours/:id/details", "description": "Create tour details (409 if they exist)", "admin": true},
						{"method": "PUT", "path": "/tours/:id/details", "description": "Update tour details (404 until created)", "admin": true},
					},
					"itinerary": []gin.H{
						{"method": "GET", "path": "/tours/:id/itinerary", "description": "List itinerary days ordered by day number", "authentication": false},
						{"method": "POST", "path": "/tours/:id/itinerary", "description": "Add a day (must not exceed tour duration)", "admin": true},
						{"method": "PUT", "path": "/tours/:id/itinerary/:dayNumber", "description": "Update a day", "admin": true},
						{"method": "DELETE", "path": "/tours/:id/itinerary/:dayNumber", "description": "Delete a day", "admin": true},
					},
					"blogs": []gin.H{
						{"method": "GET", "path": "/blogs", "description": "List blogs with category filter and pagination", "authentication": false},
						{"method": "GET", "path": "/blogs/:id", "description": "Get a single blog", "authentication": false},
						{"method": "POST", "path": "/blogs", "description": "Create a blog", "admin": true},
						{"method": "PUT", "path": "/blogs/:id", "description": "Update a blog (at least one field)", "admin": true},
						{"method": "DELETE", "path": "/blogs/:id", "description": "Delete a blog", "admin": true},
					},
				},
				"responseFormat": gin.H{
					"success": gin.H{
						"description": "All successful responses follow this format",
						"structure": gin.H{
							"success": "boolean - Always true for successful responses",
							"data":    "object - Response data",
							"meta":    gin.H{"timestamp": "string - ISO 8601 timestamp"},
						},
					},
					"error": gin.H{
						"description": "All error responses follow this format",
						"structure": gin.H{
							"success": "boolean - Always false for errors",
							"error": gin.H{
								"message": "string - Human-readable error message",
								"code":    "string - Error code (optional)",
								"details": "any - Additional error details (optional)",
							},
							"meta": gin.H{"timestamp": "string - ISO 8601 timestamp"},
						},
					},
				},
				"statusCodes": gin.H{
					"200": "OK - Request succeeded",
					"201": "Created - Resource created successfully",
					"400": "Bad Request - Invalid input or validation error",
					"401": "Unauthorized - Authentication failed or missing",
					"403": "Forbidden - Authenticated but not authorized",
					"404": "Not Found - Resource not found",
					"409": "Conflict - Resource already exists",
					"429": "Too Many Requests - Rate limit exceeded",
					"500": "Internal Server Error - Unexpected server error",
					"503": "Service Unavailable - Upstream connectivity failure, retriable",
				},
				"rateLimiting": gin.H{
					"description": "Requests are rate-limited per client IP with a token bucket; rejected requests receive 429.",
				},
				"validation": gin.H{
					"email":    "Must be a valid email format",
					"password": gin.H{"minLength": 8},
				},
			},
		})
	}
}
