package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

// SignUpInput is the payload for registering a credential.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName"`
}

// SignInInput is the payload for password sign-in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthInput carries a Google OIDC identity token.
type GoogleAuthInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// RefreshInput carries a refresh token.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ResetRequestInput asks for a password recovery email.
type ResetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput completes a recovery: the access token comes from the
// recovery link, the password is the new one.
type ResetPasswordInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// SignUpResult is the outcome of a registration. Session is nil when the
// provider requires email confirmation first.
type SignUpResult struct {
	User    domain.User
	Session *domain.Session
}

// AuthService fronts the identity provider.
type AuthService struct {
	provider      IdentityProvider
	googleRedir   string
	resetRedirect string
}

// NewAuthService constructs an AuthService. googleRedirect and
// resetRedirect are the client application URLs the provider sends users
// back to after OAuth and password recovery.
func NewAuthService(provider IdentityProvider, googleRedirect, resetRedirect string) *AuthService {
	return &AuthService{
		provider:      provider,
		googleRedir:   googleRedirect,
		resetRedirect: resetRedirect,
	}
}

// SignUp registers a new credential.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (SignUpResult, error) {
	u, sess, err := s.provider.SignUp(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		if ae, ok := supabase.IsAuthError(err); ok {
			if strings.Contains(ae.Message, "already registered") {
				return SignUpResult{}, apperr.Conflict("Email already registered")
			}
			return SignUpResult{}, apperr.Validation(ae.Message)
		}
		return SignUpResult{}, err
	}
	return SignUpResult{User: u, Session: sess}, nil
}

// SignIn exchanges a password for a session. Provider rejections collapse
// into one generic message.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (domain.User, domain.Session, error) {
	u, sess, err := s.provider.SignInWithPassword(ctx, in.Email, in.Password)
	if err != nil {
		if _, ok := supabase.IsAuthError(err); ok {
			return domain.User{}, domain.Session{}, apperr.Authentication("Invalid email or password")
		}
		return domain.User{}, domain.Session{}, err
	}
	return u, sess, nil
}

// GoogleSignIn exchanges a Google identity token for a session.
func (s *AuthService) GoogleSignIn(ctx context.Context, in GoogleAuthInput) (domain.User, domain.Session, error) {
	u, sess, err := s.provider.SignInWithIDToken(ctx, "google", in.IDToken)
	if err != nil {
		if ae, ok := supabase.IsAuthError(err); ok {
			return domain.User{}, domain.Session{}, apperr.Authentication("Google authentication failed: " + ae.Message)
		}
		return domain.User{}, domain.Session{}, err
	}
	return u, sess, nil
}

// GoogleAuthURL returns the provider's Google OAuth URL.
func (s *AuthService) GoogleAuthURL() string {
	return s.provider.AuthorizeURL("google", s.googleRedir)
}

// Refresh exchanges a refresh token for a fresh session.
func (s *AuthService) Refresh(ctx context.Context, in RefreshInput) (domain.Session, error) {
	_, sess, err := s.provider.RefreshSession(ctx, in.RefreshToken)
	if err != nil {
		if _, ok := supabase.IsAuthError(err); ok {
			return domain.Session{}, apperr.Authentication("Invalid or expired refresh token")
		}
		return domain.Session{}, err
	}
	return sess, nil
}

// SignOut revokes the session behind accessToken. Revoking an already dead
// session still succeeds from the caller's point of view.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		if _, ok := supabase.IsAuthError(err); ok {
			log.Warn().Err(err).Msg("signout rejected by provider")
			return nil
		}
		return err
	}
	return nil
}

// CurrentUser loads the full account behind the authenticated principal.
func (s *AuthService) CurrentUser(ctx context.Context, principal domain.Principal) (domain.User, error) {
	u, err := s.provider.AdminGetUser(ctx, principal.ID)
	if err != nil {
		if _, ok := supabase.IsAuthError(err); ok {
			return domain.User{}, apperr.Authentication("User not found")
		}
		return domain.User{}, err
	}
	return u, nil
}

// RequestPasswordReset asks the provider to send a recovery email. The
// outcome never reveals whether the address exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, in ResetRequestInput) error {
	if err := s.provider.ResetPasswordForEmail(ctx, in.Email, s.resetRedirect); err != nil {
		if ae, ok := supabase.IsAuthError(err); ok {
			return apperr.Validation(ae.Message)
		}
		return err
	}
	return nil
}

// ResetPassword sets a new password using the access token from the
// recovery link.
func (s *AuthService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := s.provider.UpdatePassword(ctx, in.AccessToken, in.Password); err != nil {
		if _, ok := supabase.IsAuthError(err); ok {
			return apperr.Authentication("Invalid or expired reset token")
		}
		return err
	}
	return nil
}
