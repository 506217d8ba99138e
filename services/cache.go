package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/database"
	"github.com/jtompuri/writing-contest-web-app-sub000/metrics"
	"github.com/jtompuri/writing-contest-web-app-sub000/models"
	"github.com/jtompuri/writing-contest-web-app-sub000/phase"
)

const rankingCacheTTL = time.Hour

func rankingCacheKey(contestID uint) string {
	return fmt.Sprintf("ranking:%d", contestID)
}

// CachedRanking returns the contest ranking, serving finished contests from
// the Redis cache when one is configured. Rankings of running contests are
// never cached: review writes would go stale.
func CachedRanking(ctx context.Context, contest *models.Contest, today time.Time) ([]RankedEntry, error) {
	if database.RDB == nil || phase.Of(contest, today) != phase.Finished {
		return Ranking(contest.ID)
	}

	key := rankingCacheKey(contest.ID)
	if payload, err := database.RDB.Get(ctx, key).Result(); err == nil {
		var ranked []RankedEntry
		if json.Unmarshal([]byte(payload), &ranked) == nil {
			metrics.CacheHits.Inc()
			return ranked, nil
		}
	}
	metrics.CacheMisses.Inc()

	ranked, err := Ranking(contest.ID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(ranked); err == nil {
		database.RDB.Set(ctx, key, payload, rankingCacheTTL)
	}
	return ranked, nil
}

// InvalidateRanking drops a contest's cached ranking. Admin mutations bypass
// phase gates and may change a finished contest's entries or reviews.
func InvalidateRanking(ctx context.Context, contestID uint) {
	if database.RDB == nil {
		return
	}
	database.RDB.Del(ctx, rankingCacheKey(contestID))
}
