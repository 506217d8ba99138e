package contests

import (
	"errors"
	"net/http"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

const landingListSize = 3

// day truncates to the calendar day in UTC for SQL date comparisons
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetLanding returns the front page data: three contests per phase and the
// top three entries of the most recently finished contest that publishes
// its results.
// @Summary Landing page data
// @Description Get contest highlights per phase and the latest public top three
// @Tags Contests
// @Produce json
// @Success 200 {object} LandingResponse
// @Failure 500 {object} map[string]string
// @Router /landing [get]
func GetLanding(c *gin.Context) {
	today := day(phase.Now())

	var collecting, reviewing, finished []models.Contest
	err := database.DB.Preload("Class").
		Where("collection_end >= ?", today).
		Order("collection_end ASC").
		Limit(landingListSize).
		Find(&collecting).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchLanding)
		return
	}
	err = database.DB.Preload("Class").
		Where("collection_end < ? AND review_end >= ?", today, today).
		Order("review_end ASC").
		Limit(landingListSize).
		Find(&reviewing).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchLanding)
		return
	}
	err = database.DB.Preload("Class").
		Where("review_end < ?", today).
		Order("review_end DESC").
		Limit(landingListSize).
		Find(&finished).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchLanding)
		return
	}

	landing := LandingResponse{
		Collecting: decorateAll(collecting),
		Reviewing:  decorateAll(reviewing),
		Finished:   decorateAll(finished),
		TopThree:   []services.RankedEntry{},
	}

	latest, err := services.LatestFinished(phase.Now(), true)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchLanding)
		return
	}
	if latest != nil {
		ranked, err := services.CachedRanking(c.Request.Context(), latest, phase.Now())
		if err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedFetchLanding)
			return
		}
		if len(ranked) > landingListSize {
			ranked = ranked[:landingListSize]
		}
		landing.TopThree = ranked
	}

	c.JSON(http.StatusOK, landing)
}

func decorateAll(contestList []models.Contest) []ContestResponse {
	items := make([]ContestResponse, 0, len(contestList))
	for _, contest := range contestList {
		items = append(items, decorate(contest))
	}
	return items
}
