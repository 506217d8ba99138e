package admin

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// validateEntryText checks the admin entry text bounds in characters
func validateEntryText(c *gin.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		response.ValidationError(c, map[string]string{"text": ErrEmptyText})
		return false
	}
	if utf8.RuneCountInString(text) > config.EntryMax {
		response.ValidationError(c, map[string]string{"text": ErrTextTooLong})
		return false
	}
	return true
}

// ListEntries lists entries for the admin screens
// @Summary Admin: list entries
// @Description Get a filtered, paginated list of entries
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param contest_id query int false "Filter by contest"
// @Param user_id query int false "Filter by author"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /admin/entries [get]
// @Security Bearer
func ListEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.AdminPageSize

	query := database.DB.Model(&models.Entry{})
	if contestID := c.Query("contest_id"); contestID != "" {
		query = query.Where("contest_id = ?", contestID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	query.Count(&total)

	var entryList []models.Entry
	err := query.Preload("User").Preload("Contest").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entryList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchEntries)
		return
	}
	response.Paginated(c, entryList, page, pageSize, total)
}

// CreateEntry creates an entry on an author's behalf, bypassing the phase
// gate but keeping the one-entry-per-author invariant
// @Summary Admin: create entry
// @Description Create an entry for any author in any contest regardless of phase
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body EntryRequest true "Entry"
// @Success 201 {object} models.Entry
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/entries [post]
// @Security Bearer
func CreateEntry(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if !validateEntryText(c, req.Text) {
		return
	}

	var contest models.Contest
	if err := database.DB.First(&contest, req.ContestID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}
	var author models.User
	if err := database.DB.First(&author, req.UserID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	entry := models.Entry{
		ContestID: req.ContestID,
		UserID:    req.UserID,
		Text:      req.Text,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		if database.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, ErrAlreadyEntered)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateEntry)
		return
	}

	services.InvalidateRanking(c.Request.Context(), entry.ContestID)
	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry updates an entry's text regardless of phase
// @Summary Admin: update entry
// @Description Update an entry's text regardless of phase
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body EntryRequest true "Entry"
// @Success 200 {object} models.Entry
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/entries/{id} [put]
// @Security Bearer
func UpdateEntry(c *gin.Context) {
	var entry models.Entry
	if err := database.DB.First(&entry, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrEntryNotFound)
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if !validateEntryText(c, req.Text) {
		return
	}

	if err := database.DB.Model(&entry).Update("text", req.Text).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateEntry)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes an entry and its reviews regardless of phase
// @Summary Admin: delete entry
// @Description Delete an entry regardless of phase; cascades to its reviews
// @Tags Admin
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/entries/{id} [delete]
// @Security Bearer
func DeleteEntry(c *gin.Context) {
	var entry models.Entry
	if err := database.DB.First(&entry, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrEntryNotFound)
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("entry_id = ?", entry.ID).Delete(&models.Review{}).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteEntry)
		return
	}
	if err := tx.Delete(&entry).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteEntry)
		return
	}
	if err := tx.Commit().Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteEntry)
		return
	}

	services.InvalidateRanking(c.Request.Context(), entry.ContestID)
	c.Status(http.StatusNoContent)
}
