package contests

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
)

// Constants for error messages
const (
	ErrContestNotFound     = "Contest not found"
	ErrFailedFetchContests = "Failed to fetch contests"
	ErrFailedFetchClasses  = "Failed to fetch classes"
	ErrFailedFetchLanding  = "Failed to fetch landing page data"
)

// ContestResponse is a contest decorated with its phase-derived flags
type ContestResponse struct {
	models.Contest
	Flags      phase.Flags `json:"flags"`
	EntryCount int64       `json:"entry_count"`
}

// LandingResponse seeds the front page: short lists of contests per phase
// and the top three of the most recently finished public contest.
type LandingResponse struct {
	Collecting []ContestResponse      `json:"collecting"`
	Reviewing  []ContestResponse      `json:"reviewing"`
	Finished   []ContestResponse      `json:"finished"`
	TopThree   []services.RankedEntry `json:"top_three"`
}
