// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"math"
	"time"
)

const (
	InitialEaseFactor  = 2.5
	MinEaseFactor      = 1.3
	MinInterval        = 1
	MaxInterval        = 365
	SecondInterval     = 6   // 2回目の復習後の固定間隔
	PerfectRecallBoost = 1.3 // 評価5の場合の追加倍率
)

// State は問題ごとの復習スケジュール状態です。
// NextReviewDate が nil の場合は未スケジュール。
type State struct {
	ReviewCount    int
	EaseFactor     float64
	Interval       int
	NextReviewDate *time.Time
	LastReviewedAt *time.Time
}

// Result は ComputeNextSchedule の計算結果
type Result struct {
	Interval       int       `json:"interval"`
	EaseFactor     float64   `json:"ease_factor"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// Initial は初回解答時のスケジュール状態を返します (翌日に初回復習)。
func Initial(solvedAt time.Time) State {
	next := solvedAt.AddDate(0, 0, MinInterval)
	return State{
		ReviewCount:    0,
		EaseFactor:     InitialEaseFactor,
		Interval:       MinInterval,
		NextReviewDate: &next,
	}
}

// IsScheduled は次回復習日が決まっているかどうか
func (s State) IsScheduled() bool {
	return s.NextReviewDate != nil
}

// Advance は計算結果を適用した新しい状態を返します。レシーバは変更しません。
func (s State) Advance(res Result, now time.Time) State {
	next := res.NextReviewDate
	reviewed := now
	return State{
		ReviewCount:    s.ReviewCount + 1,
		EaseFactor:     res.EaseFactor,
		Interval:       res.Interval,
		NextReviewDate: &next,
		LastReviewedAt: &reviewed,
	}
}

// ComputeNextSchedule は SM-2 派生アルゴリズムで次回の間隔・易しさ係数・復習日を計算します。
//
// 初回復習 (ReviewCount == 0) は評価に関わらず1日、ただし評価5の場合は
// 倍率が掛かって round(1*1.3) = 1 のまま。2回目は6日 (評価5なら8日)。
// 評価3は quality=2 となり、3回目以降は間隔がリセットされる点に注意。
func ComputeNextSchedule(prior State, rating Rating, now time.Time) (Result, error) {
	if !rating.IsValid() {
		return Result{}, fmt.Errorf("%w: rating %d out of range 1..5", ErrInvalidArgument, int(rating))
	}
	if prior.ReviewCount < 0 {
		return Result{}, fmt.Errorf("%w: negative review count %d", ErrInvalidArgument, prior.ReviewCount)
	}
	if prior.Interval < 0 {
		return Result{}, fmt.Errorf("%w: negative interval %d", ErrInvalidArgument, prior.Interval)
	}
	if math.IsNaN(prior.EaseFactor) || math.IsInf(prior.EaseFactor, 0) {
		return Result{}, fmt.Errorf("%w: non-finite ease factor", ErrInvalidArgument)
	}

	ease := nextEaseFactor(prior.EaseFactor, rating)
	interval := baseInterval(prior, rating, ease)

	switch rating {
	case Perfect:
		interval = int(math.Round(float64(interval) * PerfectRecallBoost))
	case Blackout:
		interval = MinInterval
	}
	interval = clampInterval(interval)

	return Result{
		Interval:       interval,
		EaseFactor:     ease,
		NextReviewDate: now.AddDate(0, 0, interval),
	}, nil
}

func nextEaseFactor(prior float64, rating Rating) float64 {
	d := float64(5 - rating.quality())
	ease := prior + (0.1 - d*(0.08+d*0.02))
	return math.Max(MinEaseFactor, ease)
}

func baseInterval(prior State, rating Rating, ease float64) int {
	switch {
	case prior.ReviewCount == 0:
		return MinInterval
	case prior.ReviewCount == 1:
		return SecondInterval
	case rating.quality() < 3:
		return MinInterval
	default:
		return int(math.Round(float64(prior.Interval) * ease))
	}
}

func clampInterval(interval int) int {
	if interval > MaxInterval {
		return MaxInterval
	}
	if interval < MinInterval {
		// 前回間隔が0のデータでも1日は空ける
		return MinInterval
	}
	return interval
}
