package results

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/services"
)

// Constants for error messages
const (
	ErrContestNotFound    = "Contest not found"
	ErrResultsNotVisible  = "Results are not visible without the contest's private key"
	ErrFailedFetchResults = "Failed to fetch results"
)

// ResultResponse is the full ranking of one contest
type ResultResponse struct {
	ContestID uint                   `json:"contest_id"`
	Title     string                 `json:"title"`
	Flags     phase.Flags            `json:"flags"`
	Ranking   []services.RankedEntry `json:"ranking"`
}
