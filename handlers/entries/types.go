package entries

import (
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
)

// Constants for error messages
const (
	ErrEntryNotFound      = "Entry not found"
	ErrContestNotFound    = "Contest not found"
	ErrNotYourEntry       = "Entry belongs to another author"
	ErrCollectionClosed   = "The collection period of this contest has ended"
	ErrAlreadyEntered     = "You already have an entry in this contest"
	ErrEmptyText          = "Entry text must not be empty"
	ErrTextTooLong        = "Entry text exceeds the maximum length"
	ErrEntryNotVisible    = "Entry is not visible without the contest's private key"
	ErrFailedCreateEntry  = "Failed to create entry"
	ErrFailedUpdateEntry  = "Failed to update entry"
	ErrFailedDeleteEntry  = "Failed to delete entry"
	ErrFailedFetchEntries = "Failed to fetch entries"
)

// CreateEntryRequest model for submitting an entry
type CreateEntryRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateEntryRequest model for editing an entry
type UpdateEntryRequest struct {
	Text string `json:"text" binding:"required"`
}

// EntryResponse is an entry augmented with its contest's phase flags and,
// when the viewer may see them, the author name and aggregate points.
type EntryResponse struct {
	ID          uint        `json:"id"`
	ContestID   uint        `json:"contest_id"`
	Text        string      `json:"text"`
	AuthorID    *uint       `json:"author_id,omitempty"`
	AuthorName  string      `json:"author_name,omitempty"`
	TotalPoints *int        `json:"total_points,omitempty"`
	Placement   *int        `json:"placement,omitempty"`
	Flags       phase.Flags `json:"flags"`
}

// MyTextResponse is one row of the author's own entries listing
type MyTextResponse struct {
	Entry       models.Entry `json:"entry"`
	Flags       phase.Flags  `json:"flags"`
	TotalPoints *int         `json:"total_points,omitempty"`
	Placement   *int         `json:"placement,omitempty"`
}
