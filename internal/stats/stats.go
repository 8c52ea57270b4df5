// internal/stats/stats.go
package stats

import (
	"iter"
	"math"
	"slices"
	"time"

	"algo_review_keep/internal/scheduler"
)

// Entry は集計対象の復習1件
type Entry struct {
	Rating     scheduler.Rating
	ReviewedAt time.Time
}

// Summary は復習履歴の集計結果です。
type Summary struct {
	TotalReviews     int     `json:"total_reviews"`
	AverageRating    float64 `json:"average_rating"`
	SuccessRate      int     `json:"success_rate"` // 評価3以上の割合 (%)
	CurrentStreak    int     `json:"current_streak"`
	BestStreak       int     `json:"best_streak"`
	ReviewsLast7Days int     `json:"reviews_last_7_days"`
}

// Summarize は復習履歴を集計します。entries の順序は問いません。
func Summarize(entries []Entry, now time.Time) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	newestFirst := slices.SortedStableFunc(slices.Values(entries), func(a, b Entry) int {
		return b.ReviewedAt.Compare(a.ReviewedAt)
	})

	var sum, passed, recent int
	weekAgo := now.AddDate(0, 0, -7)
	for _, e := range newestFirst {
		sum += int(e.Rating)
		if e.Rating.Passed() {
			passed++
		}
		if e.ReviewedAt.After(weekAgo) {
			recent++
		}
	}

	total := len(newestFirst)
	return Summary{
		TotalReviews:     total,
		AverageRating:    math.Round(float64(sum)/float64(total)*10) / 10,
		SuccessRate:      int(math.Round(float64(passed) / float64(total) * 100)),
		CurrentStreak:    scheduler.Streak(ratings(newestFirst)),
		BestStreak:       scheduler.BestStreak(ratings(newestFirst)),
		ReviewsLast7Days: recent,
	}
}

func ratings(entries []Entry) iter.Seq[scheduler.Rating] {
	return func(yield func(scheduler.Rating) bool) {
		for _, e := range entries {
			if !yield(e.Rating) {
				return
			}
		}
	}
}
