package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/http/middleware"
	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/http/validation"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
)

// AuthHandler serves the identity routes.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register mounts the identity routes on rg. requireAuth guards the
// session-bound routes.
func (h *AuthHandler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/signup", validation.Validate(validation.Schema{
		Body: func() any { return new(services.SignUpInput) },
	}), h.signUp)

	rg.POST("/signin", validation.Validate(validation.Schema{
		Body: func() any { return new(services.SignInInput) },
	}), h.signIn)

	rg.POST("/google", validation.Validate(validation.Schema{
		Body: func() any { return new(services.GoogleAuthInput) },
	}), h.googleSignIn)

	rg.GET("/google/url", h.googleAuthURL)

	rg.POST("/refresh", validation.Validate(validation.Schema{
		Body: func() any { return new(services.RefreshInput) },
	}), h.refresh)

	rg.POST("/password/reset-request", validation.Validate(validation.Schema{
		Body: func() any { return new(services.ResetRequestInput) },
	}), h.requestPasswordReset)

	rg.POST("/password/reset", validation.Validate(validation.Schema{
		Body: func() any { return new(services.ResetPasswordInput) },
	}), h.resetPassword)

	rg.POST("/signout", requireAuth, h.signOut)
	rg.GET("/me", requireAuth, h.me)
}

func (h *AuthHandler) signUp(c *gin.Context) {
	in := validation.Body[services.SignUpInput](c)

	res, err := h.auth.SignUp(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusCreated, gin.H{
		"user":    res.User,
		"session": res.Session,
		"message": "Please check your email to verify your account",
	})
}

func (h *AuthHandler) signIn(c *gin.Context) {
	in := validation.Body[services.SignInInput](c)

	user, session, err := h.auth.SignIn(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"user": user, "session": session})
}

func (h *AuthHandler) googleSignIn(c *gin.Context) {
	in := validation.Body[services.GoogleAuthInput](c)

	user, session, err := h.auth.GoogleSignIn(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"user": user, "session": session})
}

func (h *AuthHandler) googleAuthURL(c *gin.Context) {
	respond.Success(c, http.StatusOK, gin.H{"url": h.auth.GoogleAuthURL()})
}

func (h *AuthHandler) refresh(c *gin.Context) {
	in := validation.Body[services.RefreshInput](c)

	session, err := h.auth.Refresh(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"session": session})
}

func (h *AuthHandler) signOut(c *gin.Context) {
	token := middleware.BearerFrom(c)

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Successfully signed out"})
}

func (h *AuthHandler) me(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.Error(apperr.Authentication("User not authenticated")) //nolint:errcheck
		c.Abort()
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) requestPasswordReset(c *gin.Context) {
	in := validation.Body[services.ResetRequestInput](c)

	if err := h.auth.RequestPasswordReset(c.Request.Context(), *in); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	// Outcome is identical whether or not the address exists.
	respond.Success(c, http.StatusOK, gin.H{
		"message": "If the email exists, a password reset link has been sent",
	})
}

func (h *AuthHandler) resetPassword(c *gin.Context) {
	in := validation.Body[services.ResetPasswordInput](c)

	if err := h.auth.ResetPassword(c.Request.Context(), *in); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Password successfully reset"})
}
