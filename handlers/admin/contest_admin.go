package admin

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// validateContest parses and validates a contest payload. Returns the parsed
// dates; writes the validation response itself on failure. Length limits
// count characters, not bytes.
func validateContest(c *gin.Context, req *ContestRequest) (collectionEnd, reviewEnd time.Time, ok bool) {
	fieldErrors := map[string]string{}

	if req.Title == "" {
		fieldErrors["title"] = ErrTitleRequired
	} else if utf8.RuneCountInString(req.Title) > config.TitleMax {
		fieldErrors["title"] = ErrTitleTooLong
	}
	if utf8.RuneCountInString(req.ShortDescription) > config.ShortDescMax {
		fieldErrors["short_description"] = ErrShortDescTooLong
	}
	if utf8.RuneCountInString(req.LongDescription) > config.LongDescMax {
		fieldErrors["long_description"] = ErrLongDescTooLong
	}

	var err error
	collectionEnd, err = time.ParseInLocation(dateLayout, req.CollectionEnd, time.UTC)
	if err != nil {
		fieldErrors["collection_end"] = ErrInvalidDate
	}
	reviewEnd, err = time.ParseInLocation(dateLayout, req.ReviewEnd, time.UTC)
	if err != nil {
		fieldErrors["review_end"] = ErrInvalidDate
	}
	if len(fieldErrors) == 0 && collectionEnd.After(reviewEnd) {
		fieldErrors["review_end"] = ErrDatesIncoherent
	}

	if len(fieldErrors) == 0 {
		var class models.Class
		if err := database.DB.First(&class, req.ClassID).Error; err != nil {
			fieldErrors["class_id"] = ErrClassNotFound
		}
	}

	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return time.Time{}, time.Time{}, false
	}
	return collectionEnd, reviewEnd, true
}

// ListContests lists contests for the admin screens
// @Summary Admin: list contests
// @Description Get a filtered, paginated list of contests including private keys
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param class_id query int false "Filter by class"
// @Param title query string false "Filter by title substring"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Router /admin/contests [get]
// @Security Bearer
func ListContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.AdminPageSize

	query := database.DB.Model(&models.Contest{})
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if title := c.Query("title"); title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}

	var total int64
	query.Count(&total)

	var contestList []models.Contest
	err := query.Preload("Class").
		Order("id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&contestList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchContests)
		return
	}

	// Admin listings include the private key so contest owners can share
	// the gated links
	items := make([]gin.H, 0, len(contestList))
	for _, contest := range contestList {
		items = append(items, gin.H{"contest": contest, "private_key": contest.PrivateKey})
	}
	response.Paginated(c, items, page, pageSize, total)
}

// CreateContest creates a contest with a fresh private key
// @Summary Admin: create contest
// @Description Create a contest; the private key is generated once and never changes
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body ContestRequest true "Contest"
// @Success 201 {object} models.Contest
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/contests [post]
// @Security Bearer
func CreateContest(c *gin.Context) {
	var req ContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	collectionEnd, reviewEnd, ok := validateContest(c, &req)
	if !ok {
		return
	}

	privateKey, err := utils.GenerateKey(32)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedGeneratePrvKey)
		return
	}

	contest := models.Contest{
		Title:            req.Title,
		ClassID:          req.ClassID,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Anonymity:        req.Anonymity,
		PublicReviews:    req.PublicReviews,
		PublicResults:    req.PublicResults,
		CollectionEnd:    collectionEnd,
		ReviewEnd:        reviewEnd,
		PrivateKey:       privateKey,
	}
	if err := database.DB.Create(&contest).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateContest)
		return
	}
	c.JSON(http.StatusCreated, contest)
}

// UpdateContest updates a contest; the private key is never touched and the
// derived phase follows the new dates deterministically
// @Summary Admin: update contest
// @Description Update a contest's fields; downstream state is recomputed from the dates
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Contest ID"
// @Param request body ContestRequest true "Contest"
// @Success 200 {object} models.Contest
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/contests/{id} [put]
// @Security Bearer
func UpdateContest(c *gin.Context) {
	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}

	var req ContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}
	collectionEnd, reviewEnd, ok := validateContest(c, &req)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"title":             req.Title,
		"class_id":          req.ClassID,
		"short_description": req.ShortDescription,
		"long_description":  req.LongDescription,
		"anonymity":         req.Anonymity,
		"public_reviews":    req.PublicReviews,
		"public_results":    req.PublicResults,
		"collection_end":    collectionEnd,
		"review_end":        reviewEnd,
	}
	if err := database.DB.Model(&contest).Updates(updates).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateContest)
		return
	}

	services.InvalidateRanking(c.Request.Context(), contest.ID)
	c.JSON(http.StatusOK, contest)
}

// DeleteContest deletes a contest together with its entries and reviews
// @Summary Admin: delete contest
// @Description Delete a contest; cascades to its entries and their reviews
// @Tags Admin
// @Param id path int true "Contest ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/contests/{id} [delete]
// @Security Bearer
func DeleteContest(c *gin.Context) {
	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Ordered cascade: reviews of the contest's entries, entries, contest
	err := tx.Where("entry_id IN (?)",
		tx.Model(&models.Entry{}).Select("id").Where("contest_id = ?", contest.ID),
	).Delete(&models.Review{}).Error
	if err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteContest)
		return
	}
	if err := tx.Where("contest_id = ?", contest.ID).Delete(&models.Entry{}).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteContest)
		return
	}
	if err := tx.Delete(&contest).Error; err != nil {
		tx.Rollback()
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteContest)
		return
	}
	if err := tx.Commit().Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteContest)
		return
	}

	services.InvalidateRanking(c.Request.Context(), contest.ID)
	c.Status(http.StatusNoContent)
}
