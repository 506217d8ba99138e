package contests

import (
	"net/http"
	"strconv"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"
	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// decorate attaches phase flags and the entry count to a contest
func decorate(contest models.Contest) ContestResponse {
	var count int64
	database.DB.Model(&models.Entry{}).Where("contest_id = ?", contest.ID).Count(&count)
	return ContestResponse{
		Contest:    contest,
		Flags:      phase.FlagsOf(&contest, phase.Now()),
		EntryCount: count,
	}
}

// GetContests lists contests, newest collection window first
// @Summary List contests
// @Description Get a paginated list of contests with phase-derived flags
// @Tags Contests
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /contests [get]
func GetContests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := config.PageSize

	var total int64
	database.DB.Model(&models.Contest{}).Count(&total)

	var contestList []models.Contest
	err := database.DB.Preload("Class").
		Order("collection_end DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&contestList).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchContests)
		return
	}

	items := make([]ContestResponse, 0, len(contestList))
	for _, contest := range contestList {
		items = append(items, decorate(contest))
	}
	response.Paginated(c, items, page, pageSize, total)
}

// GetContest returns one contest with its phase flags
// @Summary Get contest
// @Description Get a contest by ID with phase-derived flags
// @Tags Contests
// @Produce json
// @Param id path int true "Contest ID"
// @Success 200 {object} ContestResponse
// @Failure 404 {object} map[string]string
// @Router /contests/{id} [get]
func GetContest(c *gin.Context) {
	var contest models.Contest
	if err := database.DB.Preload("Class").First(&contest, c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrContestNotFound)
		return
	}
	c.JSON(http.StatusOK, decorate(contest))
}

// GetClasses lists the genre classes
// @Summary List classes
// @Description Get all genre classes
// @Tags Contests
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} map[string]string
// @Router /classes [get]
func GetClasses(c *gin.Context) {
	var classes []models.Class
	if err := database.DB.Order("id ASC").Find(&classes).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchClasses)
		return
	}
	c.JSON(http.StatusOK, classes)
}
