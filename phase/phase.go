package phase

import (
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/models"
)

// Now returns the current time. Handlers derive "today" exclusively through
// this variable so tests can drive the contest clock.
var Now = time.Now

// Phase is the derived state of a contest. It is never stored: every write
// and visibility decision derives it from the contest dates and today's
// calendar day, all through this package.
type Phase int

const (
	// Collection: authors may create, edit and delete their entry.
	Collection Phase = iota
	// Review: reviewers may submit and re-submit complete ballots.
	Review
	// Finished: nothing may be mutated; results become publishable.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Collection:
		return "collection"
	case Review:
		return "review"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// day truncates a timestamp to its calendar day in UTC. All phase boundaries
// are inclusive on the named end day: entries are accepted through the whole
// of collection_end, ballots through the whole of review_end.
func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Of derives the phase of a contest on the given date.
func Of(contest *models.Contest, today time.Time) Phase {
	d := day(today)
	if !d.After(day(contest.CollectionEnd)) {
		return Collection
	}
	if !d.After(day(contest.ReviewEnd)) {
		return Review
	}
	return Finished
}

// CollectionOpen reports whether authors may mutate entries.
func CollectionOpen(contest *models.Contest, today time.Time) bool {
	return Of(contest, today) == Collection
}

// ReviewOpen reports whether reviewers may submit ballots.
func ReviewOpen(contest *models.Contest, today time.Time) bool {
	return Of(contest, today) == Review
}

// ResultsPublic reports whether final results are visible without the
// contest's private key.
func ResultsPublic(contest *models.Contest, today time.Time) bool {
	return Of(contest, today) == Finished && contest.PublicResults
}

// ReviewsPublic reports whether review listings are visible without the
// contest's private key.
func ReviewsPublic(contest *models.Contest, today time.Time) bool {
	p := Of(contest, today)
	return (p == Review || p == Finished) && contest.PublicReviews
}

// AnonymityActive reports whether author identities are suppressed from
// peers. Anonymity is lifted at Finished so results can name the authors.
func AnonymityActive(contest *models.Contest, today time.Time) bool {
	return contest.Anonymity && Of(contest, today) != Finished
}

// Flags bundles the phase-derived booleans that contest detail responses
// carry for the presentation layer.
type Flags struct {
	Phase          string `json:"phase"`
	CollectionOpen bool   `json:"collection_open"`
	ReviewOpen     bool   `json:"review_open"`
	ResultsPublic  bool   `json:"results_public"`
	ReviewsPublic  bool   `json:"reviews_public"`
}

// FlagsOf derives the full flag set for a contest.
func FlagsOf(contest *models.Contest, today time.Time) Flags {
	return Flags{
		Phase:          Of(contest, today).String(),
		CollectionOpen: CollectionOpen(contest, today),
		ReviewOpen:     ReviewOpen(contest, today),
		ResultsPublic:  ResultsPublic(contest, today),
		ReviewsPublic:  ReviewsPublic(contest, today),
	}
}
