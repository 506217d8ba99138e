package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	ErrNotAuthenticated = "Authentication required"
	ErrInvalidToken     = "Invalid or expired token"
	ErrInvalidCsrf      = "Missing or invalid anti-forgery token"
	ErrSuperRequired    = "Super user role required"
)

// AuthTokenCookie is the cookie carrying the session token
const AuthTokenCookie = "auth_token"

// tokenFromRequest extracts the session token from the auth cookie or from
// an Authorization: Bearer header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthMiddleware requires a valid session. On state-changing methods it also
// requires the X-Csrf-Token header to match the anti-forgery token minted at
// login. The authenticated user is stored in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, ErrNotAuthenticated)
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, ErrInvalidToken)
			c.Abort()
			return
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if !utils.SecureCompare(c.GetHeader("X-Csrf-Token"), claims.Csrf) {
				response.Error(c, http.StatusForbidden, ErrInvalidCsrf)
				c.Abort()
				return
			}
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

// TryAuthMiddleware resolves the session when one is present but lets the
// request through either way. Public listings use it so supers and authors
// see through anonymity on their own items.
func TryAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}

		var user models.User
		if err := database.DB.First(&user, claims.UserID).Error; err == nil {
			c.Set("user", &user)
		}
		c.Next()
	}
}

// SuperMiddleware requires the authenticated user to be a super user. Must
// run after AuthMiddleware.
func SuperMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromRequest(c)
		if err != nil {
			return
		}
		if !user.Super {
			response.Error(c, http.StatusForbidden, ErrSuperRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromRequest returns the user resolved by the auth middleware. When
// no user is present it writes the 401 response itself; callers just return.
func GetUserFromRequest(c *gin.Context) (*models.User, error) {
	value, exists := c.Get("user")
	if !exists {
		response.Error(c, http.StatusUnauthorized, ErrNotAuthenticated)
		c.Abort()
		return nil, errors.New("no authenticated user in context")
	}
	return value.(*models.User), nil
}

// CurrentUser returns the user resolved by TryAuthMiddleware, or nil for an
// anonymous request.
func CurrentUser(c *gin.Context) *models.User {
	if value, exists := c.Get("user"); exists {
		return value.(*models.User)
	}
	return nil
}
