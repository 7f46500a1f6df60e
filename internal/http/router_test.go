package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/config"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Env:         "test",
		APIBasePath: "/api",
		RateRPS:     100,
		RateBurst:   100,
		Supabase: config.SupabaseConfig{
			URL:        "http://supabase.invalid",
			AnonKey:    "anon",
			ServiceKey: "svc",
			Timeout:    time.Second,
		},
		AdminSecretKey: "s3cret",
	}
	supaCfg := supabase.Config{
		URL:        cfg.Supabase.URL,
		AnonKey:    cfg.Supabase.AnonKey,
		ServiceKey: cfg.Supabase.ServiceKey,
		Timeout:    cfg.Supabase.Timeout,
	}

	r := gin.New()
	RegisterRoutes(r, Clients{
		Auth:  supabase.NewAuth(supaCfg),
		Store: supabase.NewStore(supaCfg),
	}, cfg)
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body=%v", body)
	}
}

func TestRootBanner(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["message"] != "HHTrails API" || body["status"] != "running" {
		t.Fatalf("body=%v", body)
	}
	if body["documentation"] != "/api/v1/docs" {
		t.Fatalf("documentation=%v", body["documentation"])
	}
	eps := body["endpoints"].(map[string]any)
	if eps["health"] != "/api/health" {
		t.Fatalf("endpoints=%v", eps)
	}
}

func TestDocsEndpoint(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/docs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["apiVersion"] != "v1" {
		t.Fatalf("body=%v", body)
	}
	doc := body["documentation"].(map[string]any)
	base := doc["base"].(map[string]any)
	if url, _ := base["baseUrl"].(string); !strings.HasSuffix(url, "/api/v1") {
		t.Fatalf("baseUrl=%q", url)
	}
	eps := doc["endpoints"].(map[string]any)
	for _, group := range []string{"auth", "tours", "tourDetails", "itinerary", "blogs"} {
		routes, ok := eps[group].([]any)
		if !ok || len(routes) == 0 {
			t.Fatalf("missing endpoint group %q: %v", group, eps[group])
		}
	}
}

func TestNoRoute_EnvelopeShape(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("body=%v", body)
	}
	errBody := body["error"].(map[string]any)
	if errBody["message"] != "Route not found" {
		t.Fatalf("error=%v", errBody)
	}
	if _, ok := body["meta"].(map[string]any)["timestamp"]; !ok {
		t.Fatalf("meta missing: %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	r := newEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("request id=%q", got)
	}
}
