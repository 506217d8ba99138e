package reviews

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// day truncates to the calendar day in UTC for SQL date comparisons
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetReviewContests lists contests whose entries are currently reviewable
// @Summary List reviewable contests
// @Description Get a paginated list of contests with publicly visible reviews
// @Tags Reviews
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /reviews [get]
func GetReviewContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.PageSize
	today := phase.Now()

	// Review or Finished phase with public reviews; the key-gated rest stay
	// out of the public listing.
	query := database.DB.Model(&models.Contest{}).
		Where("collection_end < ? AND public_reviews = ?", day(today), true)

	var total int64
	query.Count(&total)

	var contestList []models.Contest
	err := query.Preload("Class").
		Order("review_end DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&contestList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchReviews)
		return
	}
	response.Paginated(c, contestList, page, pageSize, total)
}

// GetReviewForm returns the contest's entries for reviewing, shuffled anew
// on every request. Ordering is a display concern only; no seed is stored.
// @Summary Review form data
// @Description Get the entries of a contest in randomized order with the reviewer's stored scores
// @Tags Reviews
// @Produce json
// @Param contest_id path int true "Contest ID"
// @Param key query string false "Contest private key"
// @Success 200 {object} ReviewFormResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{contest_id} [get]
func GetReviewForm(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	key := c.Query("key")
	today := phase.Now()

	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("contest_id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}

	isSuper := viewer != nil && viewer.Super
	if !isSuper && !services.ReviewsVisible(&contest, key, today) {
		response.Error(c, http.StatusForbidden, ErrReviewsNotVisible)
		return
	}

	var entryList []models.Entry
	if err := database.DB.Where("contest_id = ?", contest.ID).Find(&entryList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchReviews)
		return
	}
	rand.Shuffle(len(entryList), func(i, j int) {
		entryList[i], entryList[j] = entryList[j], entryList[i]
	})

	form := ReviewFormResponse{
		ContestID: contest.ID,
		Flags:     phase.FlagsOf(&contest, today),
		Entries:   make([]ReviewEntry, 0, len(entryList)),
	}

	// Pre-fill the reviewer's stored scores so re-submission edits in place
	stored := map[uint]models.Review{}
	if viewer != nil {
		var reviewList []models.Review
		database.DB.
			Joins("JOIN entries ON entries.id = reviews.entry_id").
			Where("entries.contest_id = ? AND reviews.user_id = ?", contest.ID, viewer.ID).
			Find(&reviewList)
		for _, review := range reviewList {
			stored[review.EntryID] = review
		}
	}

	for _, entry := range entryList {
		item := ReviewEntry{EntryID: entry.ID, Text: entry.Text}
		if review, ok := stored[entry.ID]; ok {
			points := review.Points
			item.Points = &points
			item.Comment = review.Comment
		}
		form.Entries = append(form.Entries, item)
	}

	c.JSON(http.StatusOK, form)
}

// SubmitBallot accepts a reviewer's complete ballot for a contest
// @Summary Submit ballot
// @Description Submit one score per contest entry; re-submission overwrites the stored scores
// @Tags Reviews
// @Accept json
// @Produce json
// @Param contest_id path int true "Contest ID"
// @Param key query string false "Contest private key"
// @Param request body BallotRequest true "Ballot"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reviews/{contest_id} [post]
// @Security Bearer
func SubmitBallot(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("contest_id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}

	var req BallotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	err = services.SubmitBallot(&contest, user, req.Scores, c.Query("key"), phase.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Ballot stored"})
	case errors.Is(err, services.ErrPhaseClosed):
		response.Error(c, http.StatusConflict, ErrReviewClosed)
	case errors.Is(err, services.ErrForbidden):
		response.Error(c, http.StatusForbidden, ErrReviewsNotVisible)
	case errors.Is(err, services.ErrIncompleteBallot):
		response.Error(c, http.StatusBadRequest, ErrIncompleteBallot)
	case errors.Is(err, services.ErrInvalidScore):
		response.Error(c, http.StatusBadRequest, ErrInvalidScore)
	default:
		response.Error(c, http.StatusInternalServerError, ErrFailedSubmitBallot)
	}
}
