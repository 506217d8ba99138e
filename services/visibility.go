package services

import (
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
	"github.com/jtompuri/writing-contest-web-app-sub000/utils"
)

// The visibility gate guards every read path over reviews and results: an
// item is visible when the contest opted in to publicity for that facet, or
// when the request carries the contest's private key. The two facets share
// one key but have distinct public flags.

// keyMatches compares a presented key against the contest's private key in
// constant time. An empty key never matches.
func keyMatches(contest *models.Contest, key string) bool {
	return key != "" && utils.SecureCompare(key, contest.PrivateKey)
}

// ResultsVisible reports whether the contest's ranking may be shown. Without
// the key, results open up only once the contest is Finished and has
// public_results set. The key overrides at any phase: results are computable
// at any time for the contest owner sharing the key link.
func ResultsVisible(contest *models.Contest, key string, today time.Time) bool {
	if phase.ResultsPublic(contest, today) {
		return true
	}
	if keyMatches(contest, key) {
		return true
	}
	metrics.VisibilityDenials.WithLabelValues("results").Inc()
	return false
}

// ReviewsVisible reports whether the contest's entries may be listed for
// reviewing. Without the key this requires public_reviews and the Review or
// Finished phase.
func ReviewsVisible(contest *models.Contest, key string, today time.Time) bool {
	if phase.ReviewsPublic(contest, today) {
		return true
	}
	if keyMatches(contest, key) {
		return true
	}
	metrics.VisibilityDenials.WithLabelValues("reviews").Inc()
	return false
}

// AuthorNameVisible reports whether the entry author's identity may be shown
// to the viewer. Supers and the author always see it; everyone else only
// when the contest is not anonymous or has Finished.
func AuthorNameVisible(contest *models.Contest, entry *models.Entry, viewer *models.User, today time.Time) bool {
	if viewer != nil && (viewer.Super || viewer.ID == entry.UserID) {
		return true
	}
	return !phase.AnonymityActive(contest, today)
}
