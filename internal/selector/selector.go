// internal/selector/selector.go
package selector

import (
	"slices"
	"time"
)

// Scheduled は期日判定の対象となる項目です。
type Scheduled interface {
	// NextReviewAt は次回復習日時。未スケジュールなら nil
	NextReviewAt() *time.Time
	// SolvedOn は最初に解答した日時
	SolvedOn() time.Time
}

// DayLoad は1日あたりの予定件数
type DayLoad struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Classification は予定済み項目の分類結果です。4つの区分は互いに素。
type Classification[T Scheduled] struct {
	Overdue       []T       `json:"overdue"`
	DueToday      []T       `json:"due_today"`
	DueThisWeek   []T       `json:"due_this_week"`
	PlannedLater  []T       `json:"planned_later"`
	PriorityQueue []T       `json:"priority_queue"`
	LoadByDay     []DayLoad `json:"load_by_day"`
}

// IsDue は now 時点で復習対象かどうかを判定します。
// 予定日が now 以前、または未スケジュールで解答から猶予期間が過ぎているもの。
func IsDue(p Policy, item Scheduled, now time.Time) bool {
	return !EligibleAt(p, item).After(now)
}

// EligibleAt は項目が復習対象になる日時です。
func EligibleAt(p Policy, item Scheduled) time.Time {
	if next := item.NextReviewAt(); next != nil {
		return *next
	}
	return item.SolvedOn().Add(p.FirstReviewGrace)
}

// FilterDue は期日の来た項目を対象になった順 (古い順) で返します。入力は変更しません。
func FilterDue[T Scheduled](p Policy, items []T, now time.Time) []T {
	due := make([]T, 0, len(items))
	for _, it := range items {
		if IsDue(p, it, now) {
			due = append(due, it)
		}
	}
	SortDue(p, due)
	return due
}

// SortDue は対象になった日時の昇順で安定ソートします。
func SortDue[T Scheduled](p Policy, items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return EligibleAt(p, a).Compare(EligibleAt(p, b))
	})
}

// Within は予定日が今日から days 日以内 (期限切れを含む) の項目を予定日順で返します。
func Within[T Scheduled](p Policy, items []T, now time.Time, days int) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		next := it.NextReviewAt()
		if next == nil {
			continue
		}
		if p.DayOffset(*next, now) <= days {
			out = append(out, it)
		}
	}
	sortByNext(out)
	return out
}

// Classify は予定済みの項目を 期限切れ / 今日 / 今週 / それ以降 に分類し、
// 優先キューと horizonDays 日分の負荷を計算します。horizonDays が0以下なら Policy の既定値。
func Classify[T Scheduled](p Policy, items []T, now time.Time, horizonDays int) Classification[T] {
	if horizonDays <= 0 {
		horizonDays = p.LoadHorizonDays
	}

	c := Classification[T]{
		Overdue:      []T{},
		DueToday:     []T{},
		DueThisWeek:  []T{},
		PlannedLater: []T{},
	}
	loads := make([]int, horizonDays)

	for _, it := range items {
		next := it.NextReviewAt()
		if next == nil {
			continue
		}
		offset := p.DayOffset(*next, now)
		switch {
		case offset < 0:
			c.Overdue = append(c.Overdue, it)
		case offset == 0:
			c.DueToday = append(c.DueToday, it)
		case offset <= p.WeekHorizonDays:
			c.DueThisWeek = append(c.DueThisWeek, it)
		default:
			c.PlannedLater = append(c.PlannedLater, it)
		}
		if offset >= 0 && offset < horizonDays {
			loads[offset]++
		}
	}

	sortByNext(c.Overdue)
	sortByNext(c.DueToday)
	sortByNext(c.DueThisWeek)
	sortByNext(c.PlannedLater)

	c.PriorityQueue = make([]T, 0, len(c.Overdue)+len(c.DueToday)+len(c.DueThisWeek))
	c.PriorityQueue = append(c.PriorityQueue, c.Overdue...)
	c.PriorityQueue = append(c.PriorityQueue, c.DueToday...)
	c.PriorityQueue = append(c.PriorityQueue, c.DueThisWeek...)

	today := p.StartOfDay(now)
	c.LoadByDay = make([]DayLoad, horizonDays)
	for i := range horizonDays {
		c.LoadByDay[i] = DayLoad{Date: today.AddDate(0, 0, i), Count: loads[i]}
	}
	return c
}

// PeakDay は負荷が最大の日を返します (同数なら早い日)。
func (c Classification[T]) PeakDay() (DayLoad, bool) {
	if len(c.LoadByDay) == 0 {
		return DayLoad{}, false
	}
	peak := c.LoadByDay[0]
	for _, d := range c.LoadByDay[1:] {
		if d.Count > peak.Count {
			peak = d
		}
	}
	return peak, true
}

// MaxLoad は1日の最大件数 (グラフの縮尺用)
func (c Classification[T]) MaxLoad() int {
	peak, _ := c.PeakDay()
	return peak.Count
}

// Total は4区分の合計件数
func (c Classification[T]) Total() int {
	return len(c.Overdue) + len(c.DueToday) + len(c.DueThisWeek) + len(c.PlannedLater)
}

func sortByNext[T Scheduled](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return a.NextReviewAt().Compare(*b.NextReviewAt())
	})
}
