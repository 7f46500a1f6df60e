package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/Rigzin00/HHTrails-BE/internal/domain"
)

// AuthError is a structured failure returned by the identity provider.
type AuthError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("identity provider: %s (status %d)", e.Message, e.Status)
}

// IsAuthError reports whether err is a provider rejection and returns it.
func IsAuthError(err error) (*AuthError, bool) {
	ae, ok := err.(*AuthError)
	return ae, ok
}

// session mirrors the provider's token grant payload.
type session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         user   `json:"user"`
}

// user mirrors the provider's user payload.
type user struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	Role             string  `json:"role"`
	EmailConfirmedAt *string `json:"email_confirmed_at"`
	CreatedAt        string  `json:"created_at"`
	UserMetadata     struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

func (u user) toDomain() domain.User {
	return domain.User{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.UserMetadata.FullName,
		Avatar:        u.UserMetadata.AvatarURL,
		EmailVerified: u.EmailConfirmedAt != nil,
		CreatedAt:     u.CreatedAt,
	}
}

func (s session) toDomain() domain.Session {
	return domain.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Auth is the identity provider client. It is safe for concurrent use.
type Auth struct {
	c          *resty.Client
	serviceKey string
}

// NewAuth constructs an identity client rooted at the provider's auth
// endpoint. Public flows use the anon key; admin lookups switch to the
// service key per request.
func NewAuth(cfg Config) *Auth {
	return &Auth{
		c:          newClient(cfg.URL+"/auth/v1", cfg.AnonKey, cfg.Timeout),
		serviceKey: cfg.ServiceKey,
	}
}

// SignUp registers a new credential and returns the created user together
// with a session when the project auto-confirms email addresses.
func (a *Auth) SignUp(ctx context.Context, email, password, fullName string) (domain.User, *domain.Session, error) {
	var out session
	resp, err := a.c.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":    email,
			"password": password,
			"data":     map[string]string{"full_name": fullName},
		}).
		SetResult(&out).
		Post("/signup")
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("signup: %w", err)
	}
	if err := authError(resp); err != nil {
		return domain.User{}, nil, err
	}

	// Without auto-confirm the provider returns a bare user instead of a
	// session.
	if out.AccessToken == "" {
		var u user
		if jsonErr := json.Unmarshal(resp.Body(), &u); jsonErr == nil && u.ID != "" {
			return u.toDomain(), nil, nil
		}
	}
	sess := out.toDomain()
	return out.User.toDomain(), &sess, nil
}

// SignInWithPassword exchanges an email/password pair for a session.
func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (domain.User, domain.Session, error) {
	var out session
	resp, err := a.c.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/token")
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("signin: %w", err)
	}
	if err := authError(resp); err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return out.User.toDomain(), out.toDomain(), nil
}

// SignInWithIDToken exchanges an OIDC identity token (e.g. from Google) for
// a session.
func (a *Auth) SignInWithIDToken(ctx context.Context, provider, idToken string) (domain.User, domain.Session, error) {
	var out session
	resp, err := a.c.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "id_token").
		SetBody(map[string]string{"provider": provider, "id_token": idToken}).
		SetResult(&out).
		Post("/token")
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("signin id_token: %w", err)
	}
	if err := authError(resp); err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return out.User.toDomain(), out.toDomain(), nil
}

// AuthorizeURL builds the provider's OAuth authorization URL for the given
// provider, optionally requesting a redirect back to redirectTo.
func (a *Auth) AuthorizeURL(provider, redirectTo string) string {
	q := url.Values{"provider": {provider}}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return a.c.BaseURL + "/authorize?" + q.Encode()
}

// RefreshSession exchanges a refresh token for a fresh session.
func (a *Auth) RefreshSession(ctx context.Context, refreshToken string) (domain.User, domain.Session, error) {
	var out session
	resp, err := a.c.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&out).
		Post("/token")
	if err != nil {
		return domain.User{}, domain.Session{}, fmt.Errorf("refresh: %w", err)
	}
	if err := authError(resp); err != nil {
		return domain.User{}, domain.Session{}, err
	}
	return out.User.toDomain(), out.toDomain(), nil
}

// SignOut revokes the session behind the given access token.
func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	resp, err := a.c.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("signout: %w", err)
	}
	return authError(resp)
}

// VerifyToken validates an access token with the provider and returns the
// principal it identifies. Any provider rejection is an error; callers
// translate it into the generic unauthorized response.
func (a *Auth) VerifyToken(ctx context.Context, token string) (domain.Principal, error) {
	u, err := a.getUser(ctx, token)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{ID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// GetUser fetches the user behind an access token.
func (a *Auth) GetUser(ctx context.Context, accessToken string) (domain.User, error) {
	u, err := a.getUser(ctx, accessToken)
	if err != nil {
		return domain.User{}, err
	}
	return u.toDomain(), nil
}

func (a *Auth) getUser(ctx context.Context, accessToken string) (user, error) {
	var out user
	resp, err := a.c.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&out).
		Get("/user")
	if err != nil {
		return user{}, fmt.Errorf("get user: %w", err)
	}
	if err := authError(resp); err != nil {
		return user{}, err
	}
	return out, nil
}

// AdminGetUser fetches a user by id with service-key authority.
func (a *Auth) AdminGetUser(ctx context.Context, id string) (domain.User, error) {
	var out user
	resp, err := a.c.R().
		SetContext(ctx).
		SetHeader("apikey", a.serviceKey).
		SetAuthToken(a.serviceKey).
		SetResult(&out).
		Get("/admin/users/" + id)
	if err != nil {
		return domain.User{}, fmt.Errorf("admin get user: %w", err)
	}
	if err := authError(resp); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}

// ResetPasswordForEmail asks the provider to send a recovery email, with
// the reset link pointing at redirectTo.
func (a *Auth) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	body := map[string]string{"email": email}
	req := a.c.R().SetContext(ctx).SetBody(body)
	if redirectTo != "" {
		req.SetQueryParam("redirect_to", redirectTo)
	}
	resp, err := req.Post("/recover")
	if err != nil {
		return fmt.Errorf("reset request: %w", err)
	}
	return authError(resp)
}

// UpdatePassword sets a new password for the user behind the access token
// issued by the recovery flow.
func (a *Auth) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	resp, err := a.c.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]string{"password": newPassword}).
		Put("/user")
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return authError(resp)
}

// authError maps a non-2xx provider response to an *AuthError. The provider
// spreads its error text across several field names depending on endpoint.
func authError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		switch {
		case body.ErrorDescription != "":
			msg = body.ErrorDescription
		case body.Msg != "":
			msg = body.Msg
		case body.Message != "":
			msg = body.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(resp.Body()))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &AuthError{Status: resp.StatusCode(), Message: msg}
}
