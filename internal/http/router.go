// Package httpapi wires the HTTP transport (Gin) to the application
// services, middleware, and route handlers. It centralizes cross-cutting
// concerns: tracing, correlation IDs, logging, panic recovery, metrics,
// terminal error classification, rate limiting, CORS, and security headers.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs with secret masking
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Terminal error classifier (sees every error recorded downstream)
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
package httpapi

import (
	"net/http"
	"path"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Rigzin00/HHTrails-BE/internal/config"
	"github.com/Rigzin00/HHTrails-BE/internal/http/handlers"
	"github.com/Rigzin00/HHTrails-BE/internal/http/middleware"
	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

// Clients bundles the external collaborator clients injected into the
// router.
type Clients struct {
	Auth  *supabase.Auth
	Store *supabase.Store
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given
// Gin engine, then mounts the versioned public API under the configured
// base path.
func RegisterRoutes(r *gin.Engine, clients Clients, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured request logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Terminal error classifier. Installed here so every c.Error recorded
	// by gates, validation, or handlers lands in exactly one envelope.
	r.Use(middleware.ErrorHandler(cfg.Production()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Route not found", "not_found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "Method not allowed", "method_not_allowed", nil)
	})

	// Dependency injection: services ← collaborator clients
	tourSvc := services.NewTourService(clients.Store)
	blogSvc := services.NewBlogService(clients.Store)
	itinerarySvc := services.NewItineraryService(clients.Store)
	detailsSvc := services.NewDetailsService(clients.Store)
	authSvc := services.NewAuthService(clients.Auth, cfg.GoogleRedirectURL, cfg.PasswordResetRedirectURL)

	requireAuth := middleware.RequireAuth(clients.Auth)
	requireAdmin := middleware.RequireAdmin(cfg.AdminSecretKey)

	// Service banner for humans hitting the bare host.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "HHTrails API",
			"status":        "running",
			"version":       "1.0.0",
			"documentation": path.Join("/", cfg.APIBasePath, "v1", "docs"),
			"endpoints": gin.H{
				"health": path.Join("/", cfg.APIBasePath, "health"),
				"auth":   path.Join("/", cfg.APIBasePath, "v1", "auth"),
				"tours":  path.Join("/", cfg.APIBasePath, "v1", "tours"),
				"blogs":  path.Join("/", cfg.APIBasePath, "v1", "blogs"),
			},
		})
	})

	base := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	base.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	v1 := base.Group("/v1")
	v1.GET("/docs", handlers.Docs(cfg.APIBasePath))
	handlers.NewAuthHandler(authSvc).Register(v1.Group("/auth"), requireAuth)

	tours := v1.Group("/tours")
	handlers.NewTourHandler(tourSvc).Register(tours, requireAdmin)
	handlers.NewDetailsHandler(detailsSvc).Register(tours, requireAdmin)
	handlers.NewItineraryHandler(itinerarySvc).Register(tours, requireAdmin)

	handlers.NewBlogHandler(blogSvc).Register(v1.Group("/blogs"), requireAdmin)
}

// limitBody caps the request body size using http.MaxBytesReader. Requests
// exceeding the cap cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
