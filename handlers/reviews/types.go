package reviews

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
)

// Constants for error messages
const (
	ErrContestNotFound    = "Contest not found"
	ErrReviewsNotVisible  = "Reviews are not visible without the contest's private key"
	ErrReviewClosed       = "The review period of this contest is not open"
	ErrIncompleteBallot   = "Ballot must cover every entry of the contest exactly once"
	ErrInvalidScore       = "Every score must be an integer between 0 and 5"
	ErrFailedFetchReviews = "Failed to fetch reviews"
	ErrFailedSubmitBallot = "Failed to submit ballot"
)

// BallotRequest is a reviewer's complete ballot: one score per entry
type BallotRequest struct {
	Scores []services.BallotScore `json:"scores" binding:"required"`
}

// ReviewEntry is one entry presented for reviewing. The author is omitted
// entirely: reviewing is blind even for non-anonymous contests, the text
// stands alone.
type ReviewEntry struct {
	EntryID uint   `json:"entry_id"`
	Text    string `json:"text"`
	Points  *int   `json:"points,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ReviewFormResponse carries the entries of a contest in a randomized order
// together with the reviewer's previously stored scores, if any.
type ReviewFormResponse struct {
	ContestID uint          `json:"contest_id"`
	Flags     phase.Flags   `json:"flags"`
	Entries   []ReviewEntry `json:"entries"`
}
