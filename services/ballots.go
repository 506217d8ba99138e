package services

import (
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"

	"gorm.io/gorm/clause"
)

// BallotScore is one reviewer's score for one entry
type BallotScore struct {
	EntryID uint   `json:"entry_id" binding:"required"`
	Points  *int   `json:"points" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitBallot stores a reviewer's complete ballot for a contest. The ballot
// must cover exactly the contest's current entry set, every score must be in
// [0,5], and the contest must be in its Review phase. All rows are written
// in one transaction with per-(entry, reviewer) upsert semantics, so a
// re-submitted ballot overwrites the earlier one.
//
// A reviewer scoring their own entry is permitted: the coverage rule demands
// a score for every entry, the reviewer's own included.
func SubmitBallot(contest *models.Contest, reviewer *models.User, scores []BallotScore, key string, today time.Time) error {
	if !phase.ReviewOpen(contest, today) {
		return ErrPhaseClosed
	}
	if !reviewer.Super && !ReviewsVisible(contest, key, today) {
		return ErrForbidden
	}

	var entries []models.Entry
	if err := database.DB.Where("contest_id = ?", contest.ID).Find(&entries).Error; err != nil {
		return err
	}

	byEntry := make(map[uint]BallotScore, len(scores))
	for _, score := range scores {
		if _, dup := byEntry[score.EntryID]; dup {
			return ErrIncompleteBallot
		}
		byEntry[score.EntryID] = score
	}
	if len(byEntry) != len(entries) {
		return ErrIncompleteBallot
	}
	for _, entry := range entries {
		score, ok := byEntry[entry.ID]
		if !ok {
			return ErrIncompleteBallot
		}
		if score.Points == nil || *score.Points < 0 || *score.Points > 5 {
			return ErrInvalidScore
		}
	}

	defer metrics.RecordDBOperation("upsert", "reviews", time.Now())

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, entry := range entries {
		score := byEntry[entry.ID]
		review := models.Review{
			EntryID: entry.ID,
			UserID:  reviewer.ID,
			Points:  *score.Points,
			Comment: score.Comment,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"points", "comment"}),
		}).Create(&review).Error
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	metrics.BallotsSubmitted.WithLabelValues(contest.Title).Inc()
	return nil
}
