package results

import (
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

// GetResultContests lists finished contests with public results
// @Summary List result contests
// @Description Get a paginated list of finished contests whose results are public
// @Tags Results
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /results [get]
func GetResultContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.PageSize
	today := phase.Now()

	query := database.DB.Model(&models.Contest{}).
		Where("review_end < ? AND public_results = ?", day(today), true)

	var total int64
	query.Count(&total)

	var contestList []models.Contest
	err := query.Preload("Class").
		Order("review_end DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&contestList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchResults)
		return
	}
	response.Paginated(c, contestList, page, pageSize, total)
}

// GetResult returns the ranking of a contest
// @Summary Contest ranking
// @Description Get the ranking of a contest; gated by public_results or the private key
// @Tags Results
// @Produce json
// @Param contest_id path int true "Contest ID"
// @Param key query string false "Contest private key"
// @Success 200 {object} ResultResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /results/{contest_id} [get]
func GetResult(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	key := c.Query("key")
	today := phase.Now()

	var contest models.Contest
	if err := database.DB.First(&contest, c.Param("contest_id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}

	isSuper := viewer != nil && viewer.Super
	if !isSuper && !services.ResultsVisible(&contest, key, today) {
		response.Error(c, http.StatusForbidden, ErrResultsNotVisible)
		return
	}

	ranked, err := services.CachedRanking(c.Request.Context(), &contest, today)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchResults)
		return
	}
	ranked = services.ApplyAnonymity(ranked, &contest, viewer, today)

	c.JSON(http.StatusOK, ResultResponse{
		ContestID: contest.ID,
		Title:     contest.Title,
		Flags:     phase.FlagsOf(&contest, today),
		Ranking:   ranked,
	})
}
