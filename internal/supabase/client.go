// Package supabase implements thin HTTP clients for the two external
// collaborators: the GoTrue identity provider and the PostgREST record
// store. Both are reached over REST with resty.
//
// The clients translate collaborator failures into typed errors
// (*AuthError, *StoreError) carrying the provider's status and error code;
// they never decide HTTP semantics for the API surface; that mapping
// belongs to the services layer. Transport-level failures (refused
// connections, DNS, timeouts) are returned unmodified so the terminal
// error classifier can recognize them.
package supabase

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries the project endpoints and API keys shared by both clients.
type Config struct {
	// URL is the Supabase project base URL, e.g. https://proj.supabase.co.
	URL string
	// AnonKey authorizes public identity flows (sign-up, sign-in).
	AnonKey string
	// ServiceKey authorizes record-store access and admin identity calls.
	ServiceKey string
	// Timeout bounds each collaborator call.
	Timeout time.Duration
}

// newClient builds a resty client rooted at base with the project apikey
// header applied to every request.
func newClient(base, apikey string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetTimeout(timeout).
		SetHeader("apikey", apikey).
		SetHeader("Content-Type", "application/json")
}
