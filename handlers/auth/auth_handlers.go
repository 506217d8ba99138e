package auth

import (
	"net/http"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// Login authenticates a user by username and password
// @Summary Login
// @Description Authenticate with username and password, receive a session cookie and anti-forgery token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, csrf, err := utils.GenerateToken(&user, req.RememberMe)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenFailed)
		return
	}
	setCookieToken(c, token, req.RememberMe)

	c.JSON(http.StatusOK, AuthResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Super:     user.Super,
		CsrfToken: csrf,
	})
}

// RegisterUser creates a new account. The first user ever registered is
// promoted to super; the count and the insert run in one transaction so
// concurrent first registrations cannot both claim the role.
// @Summary Register
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if len(req.Password) < config.PasswordMin {
		response.ValidationError(c, map[string]string{"password": ErrPasswordTooShort})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrHashPasswordFailed)
		return
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Password: hashed,
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// A failed count must abort: treating it as zero would promote the
	// registrant to super.
	var countUser int64
	if err := tx.Model(&models.User{}).Count(&countUser).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}
	user.Super = countUser == 0

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if database.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, ErrUsernameInUse)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}
	if err := tx.Commit().Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrUserCreateFailed)
		return
	}

	token, csrf, err := utils.GenerateToken(&user, false)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrTokenFailed)
		return
	}
	setCookieToken(c, token, false)

	c.JSON(http.StatusCreated, AuthResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Super:     user.Super,
		CsrfToken: csrf,
	})
}

// Logout clears the session cookie
// @Summary Logout
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}

// CheckAuth returns the authenticated user's identity
// @Summary Check session
// @Description Return the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func CheckAuth(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, user)
}
