package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrInvalidCredentials = "Invalid credentials"
	ErrUsernameInUse      = "Username already in use"
	ErrPasswordTooShort   = "Password is too short"
	ErrHashPasswordFailed = "Failed to hash password"
	ErrUserCreateFailed   = "Failed to create user"
	ErrTokenFailed        = "Failed to generate token"
	ErrLogoutSuccess      = "Successfully logged out"
)

// LoginRequest model for the login endpoint
type LoginRequest struct {
	Username   string `json:"username" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest model for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse model for authentication responses. CsrfToken must be echoed
// back in the X-Csrf-Token header on every state-changing request.
type AuthResponse struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Super     bool   `json:"super"`
	CsrfToken string `json:"csrf_token"`
}

// setCookieToken sets the session token as a secure HTTP-only cookie
func setCookieToken(c *gin.Context, token string, rememberMe bool) {
	var maxAge time.Duration
	if rememberMe {
		maxAge = 30 * 24 * time.Hour
	} else {
		maxAge = 1 * 24 * time.Hour
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"auth_token",
		token,
		int(maxAge.Seconds()),
		"/",
		"",
		true,
		true,
	)
}
