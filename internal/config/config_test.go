package config

import (
	"testing"
	"time"
)

// setRequired sets the minimum environment needed for Load to succeed.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service")
	t.Setenv("ADMIN_SECRET_KEY", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("port=%q", cfg.Port)
	}
	if cfg.Env != "development" || cfg.Production() {
		t.Fatalf("env=%q production=%v", cfg.Env, cfg.Production())
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("base path=%q", cfg.APIBasePath)
	}
	if cfg.ShutdownGrace != 10*time.Second {
		t.Fatalf("shutdown grace=%v", cfg.ShutdownGrace)
	}
	if cfg.Supabase.Timeout != 15*time.Second {
		t.Fatalf("supabase timeout=%v", cfg.Supabase.Timeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	cases := []string{"SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_SERVICE_ROLE_KEY", "ADMIN_SECRET_KEY"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error when %s is empty", missing)
			}
		})
	}
}

func TestLoad_NormalizesEnvAndBasePath(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("API_BASE_PATH", "api/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production() {
		t.Fatalf("env=%q", cfg.Env)
	}
	if cfg.APIBasePath != "/api" {
		t.Fatalf("base path=%q", cfg.APIBasePath)
	}
}

func TestLoad_NodeEnvFallback(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production() {
		t.Fatalf("env=%q", cfg.Env)
	}

	// APP_ENV wins when both are set.
	t.Setenv("APP_ENV", "test")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("env=%q", cfg.Env)
	}
}

func TestLoad_UnknownEnvFallsBackToDevelopment(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "staging")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "development" {
		t.Fatalf("env=%q", cfg.Env)
	}
}

func TestLoad_TrimsSupabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Supabase.URL != "https://proj.supabase.co" {
		t.Fatalf("url=%q", cfg.Supabase.URL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_BURST", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for RATE_BURST=0")
	}
}
