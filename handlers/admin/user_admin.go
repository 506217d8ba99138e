package admin

import (
	"net/http"
	"strconv"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// ListUsers lists users for the admin screens
// @Summary Admin: list users
// @Description Get a filtered, paginated list of users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param search query string false "Filter by name or username substring"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /admin/users [get]
// @Security Bearer
func ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.AdminPageSize

	query := database.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR username LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var userList []models.User
	err := query.Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&userList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchUsers)
		return
	}
	response.Paginated(c, userList, page, pageSize, total)
}

// CreateUser creates a user account with an optional super role
// @Summary Admin: create user
// @Description Create a user; the same username and password rules apply as for registration
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users [post]
// @Security Bearer
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
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
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateUser)
		return
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Password: hashed,
		Super:    req.Super,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, ErrDuplicateUsername)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateUser)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser updates a user account. Demoting the last remaining super user
// is rejected: the system must keep at least one administrator.
// @Summary Admin: update user
// @Description Update a user's name, username, password or role
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/users/{id} [put]
// @Security Bearer
func UpdateUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"username": req.Username,
	}
	if req.Password != "" {
		if len(req.Password) < config.PasswordMin {
			response.ValidationError(c, map[string]string{"password": ErrPasswordTooShort})
			return
		}
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedUpdateUser)
			return
		}
		updates["password"] = hashed
	}
	if req.Super != nil {
		if user.Super && !*req.Super {
			var superCount int64
			database.DB.Model(&models.User{}).Where("super = ?", true).Count(&superCount)
			if superCount <= 1 {
				response.Error(c, http.StatusConflict, ErrDemoteLastSuper)
				return
			}
		}
		updates["super"] = *req.Super
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		if database.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, ErrDuplicateUsername)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateUser)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user together with their entries and reviews. Super
// users and the requesting admin themselves cannot be deleted.
// @Summary Admin: delete user
// @Description Delete a user; cascades to their entries, the reviews on those entries, and their own reviews
// @Tags Admin
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id} [delete]
// @Security Bearer
func DeleteUser(c *gin.Context) {
	admin, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var target models.User
	if err := database.DB.First(&target, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}
	if target.ID == admin.ID {
		response.Error(c, http.StatusForbidden, ErrDeleteSelf)
		return
	}
	if target.Super {
		response.Error(c, http.StatusForbidden, ErrDeleteSuper)
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Ordered cascade: reviews written by the user, reviews on the user's
	// entries, the entries, then the user
	if err := tx.Where("user_id = ?", target.ID).Delete(&models.Review{}).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}
	err = tx.Where("entry_id IN (?)",
		tx.Model(&models.Entry{}).Select("id").Where("user_id = ?", target.ID),
	).Delete(&models.Review{}).Error
	if err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}
	if err := tx.Where("user_id = ?", target.ID).Delete(&models.Entry{}).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}
	if err := tx.Delete(&target).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}
	if err := tx.Commit().Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteUser)
		return
	}

	c.Status(http.StatusNoContent)
}
