// Package services implements the application's use cases on top of the
// identity provider and the record store.
//
// Each service depends on narrow consumer-side interfaces so tests can
// substitute the collaborators. Services translate collaborator error codes
// (the store's no-row sentinel, constraint violations, provider rejections)
// into typed application errors; transport failures are returned unchanged
// so the terminal classifier can map them to retriable responses.
package services

import (
	"context"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

// RecordStore is the slice of the record-store client the services use.
type RecordStore interface {
	SelectOne(ctx context.Context, table string, filters supabase.Filters, dest any) error
	SelectList(ctx context.Context, table string, q supabase.ListQuery, dest any) (int64, error)
	Insert(ctx context.Context, table string, body, dest any) error
	UpdateOne(ctx context.Context, table string, filters supabase.Filters, patch, dest any) error
	Delete(ctx context.Context, table string, filters supabase.Filters) (int64, error)
}

// IdentityProvider is the slice of the identity client the auth service
// uses.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, fullName string) (domain.User, *domain.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (domain.User, domain.Session, error)
	SignInWithIDToken(ctx context.Context, provider, idToken string) (domain.User, domain.Session, error)
	AuthorizeURL(provider, redirectTo string) string
	RefreshSession(ctx context.Context, refreshToken string) (domain.User, domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	AdminGetUser(ctx context.Context, id string) (domain.User, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// notFoundOr maps the store's no-row sentinel to a not-found error with the
// given message. Anything else, transport failures included, passes through.
func notFoundOr(err error, msg string) error {
	if supabase.IsNoRows(err) {
		return apperr.NotFound(msg)
	}
	return err
}

// writeError maps a store failure on a write to an application error: the
// caller handles specific constraint codes first, then falls back here. A
// structured store message becomes a validation error, mirroring how the
// store reports malformed writes; everything else passes through.
func writeError(err error) error {
	if se, ok := err.(*supabase.StoreError); ok {
		return apperr.Validation(se.Message)
	}
	return err
}
