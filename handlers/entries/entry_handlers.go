package entries

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// validateText checks the entry text bounds and reports a per-field message.
// Limits count characters, not bytes, so multibyte text gets the full length.
func validateText(c *gin.Context, text string) bool {
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

// CreateEntry submits the author's entry to a contest
// @Summary Submit entry
// @Description Create the authenticated author's entry in a contest; one entry per author per contest
// @Tags Entries
// @Accept json
// @Produce json
// @Param id path int true "Contest ID"
// @Param request body CreateEntryRequest true "Entry text"
// @Success 201 {object} models.Entry
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /contests/{id}/entries [post]
// @Security Bearer
func CreateEntry(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}
	if !phase.CollectionOpen(&contest, phase.Now()) {
		response.Error(c, http.StatusConflict, ErrCollectionClosed)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if !validateText(c, req.Text) {
		return
	}

	entry := models.Entry{
		ContestID: contest.ID,
		UserID:    user.ID,
		Text:      req.Text,
	}
	// The unique index on (contest_id, user_id) decides the duplicate case,
	// so two concurrent submissions cannot both succeed.
	if err := database.DB.Create(&entry).Error; err != nil {
		if database.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, ErrAlreadyEntered)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateEntry)
		return
	}

	metrics.EntriesCreated.WithLabelValues(contest.Title).Inc()
	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry edits the author's entry while collection is open
// @Summary Edit entry
// @Description Update the text of the authenticated author's own entry
// @Tags Entries
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body UpdateEntryRequest true "New text"
// @Success 200 {object} models.Entry
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /entries/{id} [put]
// @Security Bearer
func UpdateEntry(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var entry models.Entry
	if err := database.DB.Preload("Contest").First(&entry, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrEntryNotFound)
		return
	}
	if entry.UserID != user.ID {
		response.Error(c, http.StatusForbidden, ErrNotYourEntry)
		return
	}
	if !phase.CollectionOpen(entry.Contest, phase.Now()) {
		response.Error(c, http.StatusConflict, ErrCollectionClosed)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	if !validateText(c, req.Text) {
		return
	}

	if err := database.DB.Model(&entry).Update("text", req.Text).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateEntry)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes the author's entry and its reviews
// @Summary Delete entry
// @Description Delete the authenticated author's own entry while collection is open; cascades to its reviews
// @Tags Entries
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /entries/{id} [delete]
// @Security Bearer
func DeleteEntry(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var entry models.Entry
	if err := database.DB.Preload("Contest").First(&entry, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrEntryNotFound)
		return
	}
	if entry.UserID != user.ID {
		response.Error(c, http.StatusForbidden, ErrNotYourEntry)
		return
	}
	if !phase.CollectionOpen(entry.Contest, phase.Now()) {
		response.Error(c, http.StatusConflict, ErrCollectionClosed)
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

	c.Status(http.StatusNoContent)
}

// GetEntry returns a single entry with aggregate points and the author
// identity the viewer is allowed to see
// @Summary Get entry
// @Description Get an entry; visibility is gated by the contest's public flags or private key
// @Tags Entries
// @Produce json
// @Param id path int true "Entry ID"
// @Param key query string false "Contest private key"
// @Success 200 {object} EntryResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /entries/{id} [get]
func GetEntry(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	key := c.Query("key")
	today := phase.Now()

	var entry models.Entry
	if err := database.DB.Preload("Contest").Preload("User").First(&entry, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrEntryNotFound)
		return
	}
	contest := entry.Contest

	isOwner := viewer != nil && viewer.ID == entry.UserID
	isSuper := viewer != nil && viewer.Super
	if !isOwner && !isSuper &&
		!services.ReviewsVisible(contest, key, today) &&
		!services.ResultsVisible(contest, key, today) {
		response.Error(c, http.StatusForbidden, ErrEntryNotVisible)
		return
	}

	resp := EntryResponse{
		ID:        entry.ID,
		ContestID: entry.ContestID,
		Text:      entry.Text,
		Flags:     phase.FlagsOf(contest, today),
	}
	// The numeric author id identifies the author as surely as the name, so
	// both stay suppressed while anonymity is active.
	if services.AuthorNameVisible(contest, &entry, viewer, today) {
		authorID := entry.UserID
		resp.AuthorID = &authorID
		if entry.User != nil {
			resp.AuthorName = entry.User.Name
		}
	}

	// Aggregate points stay hidden until results are visible to this viewer.
	// Authors see their own standing once the contest has finished.
	finished := phase.Of(contest, today) == phase.Finished
	if isSuper || services.ResultsVisible(contest, key, today) || (isOwner && finished) {
		points, placement, err := services.EntryStanding(&entry)
		if err == nil {
			resp.TotalPoints = &points
			resp.Placement = &placement
		}
	}

	c.JSON(http.StatusOK, resp)
}
