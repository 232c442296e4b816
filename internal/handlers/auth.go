package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/classhub/backend/internal/auth"
	apierrors "github.com/classhub/backend/internal/errors"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func apiErrOAuthDisabled() *apierrors.APIError {
	return &apierrors.APIError{
		Code:    apierrors.ErrBadRequest,
		Message: "Google sign-in is not configured on this deployment",
		Status:  http.StatusNotImplemented,
	}
}

// Register creates a staff account with a password.
// POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			util.RespondValidationError(c, "email", "An account with this email already exists")
			return
		}
		util.RespondInternalError(c, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password.
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			util.RespondUnauthorized(c, "Invalid email or password")
			return
		}
		util.RespondInternalError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleOAuth redirects to Google's consent screen.
// GET /api/v1/auth/google
func (h *Handlers) GoogleOAuth(c *gin.Context) {
	url, err := h.authService.GoogleOAuthURL(uuid.New().String())
	if err != nil {
		util.RespondWithAPIError(c, apiErrOAuthDisabled())
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the OAuth flow.
// GET /api/v1/auth/google/callback
func (h *Handlers) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		util.RespondBadRequest(c, "missing authorization code")
		return
	}

	resp, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, auth.ErrOAuthDisabled) {
			util.RespondWithAPIError(c, apiErrOAuthDisabled())
			return
		}
		util.RespondUnauthorized(c, "Google sign-in failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// AuthMiddleware validates the bearer token and loads the user into the
// request context.
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, err := h.authService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireReviewer gates lesson-plan review endpoints.
func (h *Handlers) RequireReviewer() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.CanReview() })
}

// RequireAdmin gates administrative endpoints.
func (h *Handlers) RequireAdmin() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.IsStaffAdmin() })
}

func requireRole(allowed func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := util.GetUserFromContext(c)
		if !ok {
			c.Abort()
			return
		}
		if !allowed(user) {
			util.RespondForbidden(c, "insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
