package selector

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id     string
	next   *time.Time
	solved time.Time
}

func (i testItem) NextReviewAt() *time.Time { return i.next }
func (i testItem) SolvedOn() time.Time      { return i.solved }

func at(t time.Time) *time.Time { return &t }

func ids(items []testItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.id)
	}
	return out
}

var now = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func TestIsDue(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		item testItem
		want bool
	}{
		{"予定日が現在時刻ちょうど", testItem{next: at(now)}, true},
		{"予定日が過去", testItem{next: at(now.Add(-72 * time.Hour))}, true},
		{"予定日が1秒後", testItem{next: at(now.Add(time.Second))}, false},
		{"未スケジュール: 解答から24時間", testItem{solved: now.Add(-24 * time.Hour)}, true},
		{"未スケジュール: 解答から23時間59分", testItem{solved: now.Add(-24*time.Hour + time.Minute)}, false},
		{"未スケジュール: 解答から3日", testItem{solved: now.AddDate(0, 0, -3)}, true},
		{"予定日が未来なら解答日時は無関係", testItem{next: at(now.Add(time.Hour)), solved: now.AddDate(0, 0, -30)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDue(p, tt.item, now))
		})
	}
}

func TestIsDue_CustomGrace(t *testing.T) {
	p := DefaultPolicy()
	p.FirstReviewGrace = 2 * time.Hour
	assert.True(t, IsDue(p, testItem{solved: now.Add(-2 * time.Hour)}, now))
	assert.False(t, IsDue(p, testItem{solved: now.Add(-time.Hour)}, now))
}

func TestFilterDue(t *testing.T) {
	p := DefaultPolicy()
	items := []testItem{
		{id: "future", next: at(now.Add(time.Hour))},
		{id: "b", next: at(now.Add(-time.Hour))},
		{id: "fresh", solved: now.Add(-time.Hour)},
		{id: "a", next: at(now.Add(-48 * time.Hour))},
		{id: "unscheduled", solved: now.Add(-30 * time.Hour)}, // 対象になったのは6時間前
	}
	before := slices.Clone(items)

	due := FilterDue(p, items, now)

	assert.Equal(t, []string{"a", "unscheduled", "b"}, ids(due))
	assert.Equal(t, before, items)
}

func classificationFixture() []testItem {
	return []testItem{
		{id: "later", next: at(time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC))},
		{id: "week7", next: at(time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC))},
		{id: "overdue2", next: at(time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC))},
		{id: "today-late", next: at(time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC))},
		{id: "week1", next: at(time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC))},
		{id: "overdue1", next: at(time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC))},
		{id: "today-early", next: at(time.Date(2025, 3, 10, 0, 30, 0, 0, time.UTC))},
		{id: "unscheduled", solved: now.AddDate(0, 0, -5)},
	}
}

func TestClassify(t *testing.T) {
	p := DefaultPolicy()
	items := classificationFixture()
	before := slices.Clone(items)

	c := Classify(p, items, now, 0)

	assert.Equal(t, []string{"overdue2", "overdue1"}, ids(c.Overdue))
	assert.Equal(t, []string{"today-early", "today-late"}, ids(c.DueToday))
	assert.Equal(t, []string{"week1", "week7"}, ids(c.DueThisWeek))
	assert.Equal(t, []string{"later"}, ids(c.PlannedLater))
	assert.Equal(t, []string{"overdue2", "overdue1", "today-early", "today-late", "week1", "week7"}, ids(c.PriorityQueue))
	assert.Equal(t, 7, c.Total())

	require.Len(t, c.LoadByDay, DefaultLoadHorizonDays)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), c.LoadByDay[0].Date)
	assert.Equal(t, 2, c.LoadByDay[0].Count)
	assert.Equal(t, 1, c.LoadByDay[1].Count)
	assert.Equal(t, 1, c.LoadByDay[7].Count)
	assert.Equal(t, 1, c.LoadByDay[8].Count)
	assert.Equal(t, 0, c.LoadByDay[13].Count)

	// 入力は変更されない
	assert.Equal(t, before, items)
}

func TestClassify_Partition(t *testing.T) {
	p := DefaultPolicy()
	items := classificationFixture()
	c := Classify(p, items, now, 14)

	all := slices.Concat(ids(c.Overdue), ids(c.DueToday), ids(c.DueThisWeek), ids(c.PlannedLater))
	scheduled := make([]string, 0)
	for _, it := range items {
		if it.next != nil {
			scheduled = append(scheduled, it.id)
		}
	}
	slices.Sort(all)
	slices.Sort(scheduled)
	assert.Equal(t, scheduled, all)
	assert.Equal(t, len(slices.Compact(slices.Clone(all))), len(all), "区分が重複している")
}

func TestClassify_Idempotent(t *testing.T) {
	p := DefaultPolicy()
	items := classificationFixture()
	assert.Equal(t, Classify(p, items, now, 14), Classify(p, items, now, 14))
}

func TestClassify_Empty(t *testing.T) {
	c := Classify(DefaultPolicy(), []testItem{}, now, 5)

	assert.NotNil(t, c.Overdue)
	assert.NotNil(t, c.PriorityQueue)
	assert.Empty(t, c.PriorityQueue)
	require.Len(t, c.LoadByDay, 5)
	for _, d := range c.LoadByDay {
		assert.Zero(t, d.Count)
	}
	peak, ok := c.PeakDay()
	assert.True(t, ok)
	assert.Zero(t, peak.Count)
}

func TestClassify_Location(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	// UTC 15:30 は JST の翌日 00:30
	n := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	item := testItem{id: "x", next: at(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC))}

	utc := Classify(DefaultPolicy(), []testItem{item}, n, 3)
	assert.Equal(t, []string{"x"}, ids(utc.DueToday))

	tokyo := Classify(DefaultPolicy().WithLocation(jst), []testItem{item}, n, 3)
	assert.Equal(t, []string{"x"}, ids(tokyo.Overdue))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, jst), tokyo.LoadByDay[0].Date)
	assert.Zero(t, tokyo.LoadByDay[0].Count)
}

func TestClassify_CustomWeek(t *testing.T) {
	p := DefaultPolicy()
	p.WeekHorizonDays = 3
	c := Classify(p, classificationFixture(), now, 14)
	assert.Equal(t, []string{"week1"}, ids(c.DueThisWeek))
	assert.Equal(t, []string{"week7", "later"}, ids(c.PlannedLater))
}

func TestPeakDay(t *testing.T) {
	items := []testItem{
		{id: "a", next: at(now.AddDate(0, 0, 2))},
		{id: "b", next: at(now.AddDate(0, 0, 2))},
		{id: "c", next: at(now.AddDate(0, 0, 4))},
		{id: "d", next: at(now.AddDate(0, 0, 4))},
		{id: "e", next: at(now.AddDate(0, 0, 1))},
	}
	c := Classify(DefaultPolicy(), items, now, 7)
	peak, ok := c.PeakDay()
	require.True(t, ok)
	assert.Equal(t, 2, peak.Count)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), peak.Date)
	assert.Equal(t, 2, c.MaxLoad())
}

func TestWithin(t *testing.T) {
	items := classificationFixture()
	got := Within(DefaultPolicy(), items, now, 7)
	assert.Equal(t, []string{"overdue2", "overdue1", "today-early", "today-late", "week1", "week7"}, ids(got))
}

func TestDayOffset(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 0, p.DayOffset(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -1, p.DayOffset(time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC), now))
	assert.Equal(t, 1, p.DayOffset(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 31, p.DayOffset(time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC), now))
}
