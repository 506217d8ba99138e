package services

import (
	"errors"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"

	"gorm.io/gorm"
)

// RankedEntry is one row of a contest ranking: an entry with its aggregate
// points and competition placement. The author identity (UserID and
// AuthorName) is blanked by ApplyAnonymity for viewers who may not see it.
type RankedEntry struct {
	EntryID     uint   `json:"entry_id"`
	ContestID   uint   `json:"contest_id"`
	UserID      uint   `json:"user_id,omitempty"`
	AuthorName  string `json:"author_name"`
	TotalPoints int    `json:"total_points"`
	Placement   int    `json:"placement"`
}

// Ranking computes the ranking of a contest: total points per entry, sorted
// by points descending with the entry id ascending as the deterministic
// tiebreak, and competition placement (ties share a placement, the next
// placement skips accordingly). Entries without reviews count zero points.
func Ranking(contestID uint) ([]RankedEntry, error) {
	defer metrics.RecordDBOperation("ranking", "entries", time.Now())

	var ranked []RankedEntry
	err := database.DB.Raw(`
        SELECT e.id AS entry_id, e.contest_id, e.user_id, u.name AS author_name,
               COALESCE(SUM(r.points), 0) AS total_points
        FROM entries e
        JOIN users u ON u.id = e.user_id
        LEFT JOIN reviews r ON r.entry_id = e.id
        WHERE e.contest_id = ?
        GROUP BY e.id, e.contest_id, e.user_id, u.name
        ORDER BY total_points DESC, e.id ASC
    `, contestID).Scan(&ranked).Error
	if err != nil {
		return nil, err
	}

	// Competition ranking: placement = 1 + count of strictly higher totals.
	for i := range ranked {
		if i > 0 && ranked[i].TotalPoints == ranked[i-1].TotalPoints {
			ranked[i].Placement = ranked[i-1].Placement
		} else {
			ranked[i].Placement = i + 1
		}
	}
	return ranked, nil
}

// TotalPoints sums the review points of a single entry
func TotalPoints(entryID uint) (int, error) {
	var total int
	err := database.DB.Model(&models.Review{}).
		Select("COALESCE(SUM(points), 0)").
		Where("entry_id = ?", entryID).
		Scan(&total).Error
	return total, err
}

// EntryStanding returns the aggregate points and placement of one entry
// within its contest.
func EntryStanding(entry *models.Entry) (points int, placement int, err error) {
	ranked, err := Ranking(entry.ContestID)
	if err != nil {
		return 0, 0, err
	}
	for _, row := range ranked {
		if row.EntryID == entry.ID {
			return row.TotalPoints, row.Placement, nil
		}
	}
	return 0, 0, ErrNotFound
}

// ApplyAnonymity blanks author identities the viewer may not see, the
// numeric user id included: a stable id could be joined against the same
// author's visible entries elsewhere. Rankings of anonymous contests keep
// identities hidden from key holders until Finished.
func ApplyAnonymity(ranked []RankedEntry, contest *models.Contest, viewer *models.User, today time.Time) []RankedEntry {
	if !phase.AnonymityActive(contest, today) {
		return ranked
	}
	for i := range ranked {
		if viewer != nil && (viewer.Super || viewer.ID == ranked[i].UserID) {
			continue
		}
		ranked[i].UserID = 0
		ranked[i].AuthorName = ""
	}
	return ranked
}

// LatestFinished returns the most recently finished contest, ordered by
// review_end descending. With publicOnly set, only contests that publish
// their results qualify: the landing page must not leak private rankings.
// Returns ErrNotFound when no contest has finished.
func LatestFinished(today time.Time, publicOnly bool) (*models.Contest, error) {
	query := database.DB.Where("review_end < ?", day(today))
	if publicOnly {
		query = query.Where("public_results = ?", true)
	}
	var contest models.Contest
	err := query.Order("review_end DESC").First(&contest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

// day mirrors the phase package's calendar-day truncation for SQL
// comparisons against date columns.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
