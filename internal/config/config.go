// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server settings,
// logging, the Supabase collaborator endpoints and keys, the admin shared
// secret, rate limiting, CORS, security headers, and observability.
//
// Configuration is resolved once at process start and never mutated
// afterwards; components receive the values they need by injection.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rigzin00/HHTrails-BE/internal/sysutil"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// SupabaseConfig holds the collaborator endpoints and API keys. The service
// key is used for record-store access and admin identity operations; the
// anon key for user-facing sign-in flows.
type SupabaseConfig struct {
	URL        string        // SUPABASE_URL (project base URL)
	AnonKey    string        // SUPABASE_ANON_KEY
	ServiceKey string        // SUPABASE_SERVICE_ROLE_KEY
	Timeout    time.Duration // SUPABASE_TIMEOUT per-request client timeout
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string
	Env               string // development|production|test (APP_ENV, falling back to NODE_ENV)
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	ShutdownGrace     time.Duration // forced-stop deadline after SIGTERM
	GinMode           string        // debug|release|test

	// Logging
	LogLevel    string // debug|info|warn|error|fatal|panic
	LogPretty   bool   // pretty console logs in dev
	APIBasePath string // base path for versioned API routes

	// Collaborators
	Supabase SupabaseConfig

	// Admin gate shared secret
	AdminSecretKey string // ADMIN_SECRET_KEY

	// Client redirect targets for identity flows
	GoogleRedirectURL        string // GOOGLE_REDIRECT_URL (OAuth callback in the client app)
	PasswordResetRedirectURL string // PASSWORD_RESET_REDIRECT_URL (reset page in the client app)

	// Rate limiting
	RateRPS   float64
	RateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// Production reports whether the process runs with production disclosure
// rules (internal error text is never sent to callers).
func (c Config) Production() bool { return c.Env == "production" }

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port: getenv("PORT", "3000"),
		// NODE_ENV is honored as a fallback for deployments migrated from
		// the previous platform.
		Env: strings.ToLower(sysutil.FirstNonEmpty(
			os.Getenv("APP_ENV"), os.Getenv("NODE_ENV"), "development")),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		ShutdownGrace:     getdur("SHUTDOWN_GRACE", 10*time.Second),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:   getbool("LOG_PRETTY", false),
		APIBasePath: normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		// Collaborators
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(getenv("SUPABASE_URL", ""), "/"),
			AnonKey:    getenv("SUPABASE_ANON_KEY", ""),
			ServiceKey: getenv("SUPABASE_SERVICE_ROLE_KEY", ""),
			Timeout:    getdur("SUPABASE_TIMEOUT", 15*time.Second),
		},

		// Admin gate
		AdminSecretKey: getenv("ADMIN_SECRET_KEY", ""),

		// Identity flow redirects
		GoogleRedirectURL:        getenv("GOOGLE_REDIRECT_URL", "http://localhost:5173/google/callback"),
		PasswordResetRedirectURL: getenv("PASSWORD_RESET_REDIRECT_URL", "http://localhost:5173/reset-password"),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "hhtrails-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	switch cfg.Env {
	case "development", "production", "test":
	default:
		cfg.Env = "development"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.ShutdownGrace <= 0 {
		return cfg, errors.New("SHUTDOWN_GRACE must be > 0")
	}
	if strings.TrimSpace(cfg.Supabase.URL) == "" {
		return cfg, errors.New("SUPABASE_URL must not be empty")
	}
	if strings.TrimSpace(cfg.Supabase.AnonKey) == "" {
		return cfg, errors.New("SUPABASE_ANON_KEY must not be empty")
	}
	if strings.TrimSpace(cfg.Supabase.ServiceKey) == "" {
		return cfg, errors.New("SUPABASE_SERVICE_ROLE_KEY must not be empty")
	}
	if cfg.Supabase.Timeout <= 0 {
		return cfg, errors.New("SUPABASE_TIMEOUT must be > 0")
	}
	if strings.TrimSpace(cfg.AdminSecretKey) == "" {
		return cfg, errors.New("ADMIN_SECRET_KEY must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
