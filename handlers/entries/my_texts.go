package entries

import (
	"net/http"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/middleware"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils/response"

	"github.com/gin-gonic/gin"
)

// GetMyTexts lists the author's own entries across contests. Authors always
// see their own texts; points and placement appear once a contest finishes.
// @Summary My texts
// @Description Get the authenticated author's entries with phase-aware annotations
// @Tags Entries
// @Produce json
// @Success 200 {array} MyTextResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /my-texts [get]
// @Security Bearer
func GetMyTexts(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var entryList []models.Entry
	findErr := database.DB.Preload("Contest").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&entryList).Error
	if findErr != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchEntries)
		return
	}

	today := phase.Now()
	items := make([]MyTextResponse, 0, len(entryList))
	for i := range entryList {
		entry := entryList[i]
		item := MyTextResponse{
			Entry: entry,
			Flags: phase.FlagsOf(entry.Contest, today),
		}
		if phase.Of(entry.Contest, today) == phase.Finished {
			points, placement, err := services.EntryStanding(&entry)
			if err == nil {
				item.TotalPoints = &points
				item.Placement = &placement
			}
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, items)
}
