// internal/selector/policy.go
package selector

import "time"

// 既定値 (設定ファイルの schedule セクションで上書き可能)
const (
	DefaultFirstReviewGrace = 24 * time.Hour
	DefaultWeekHorizonDays  = 7
	DefaultLoadHorizonDays  = 14
)

// Policy は期日判定と分類に使う設定値です。
type Policy struct {
	// 未スケジュールの問題が解答後どれだけ経てば期日とみなすか
	FirstReviewGrace time.Duration
	// 「今週」の範囲 (今日を除く日数)
	WeekHorizonDays int
	// 負荷ヒストグラムの既定日数
	LoadHorizonDays int
	// 暦日の境界を判定するタイムゾーン。nil なら UTC
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		FirstReviewGrace: DefaultFirstReviewGrace,
		WeekHorizonDays:  DefaultWeekHorizonDays,
		LoadHorizonDays:  DefaultLoadHorizonDays,
		Location:         time.UTC,
	}
}

// WithLocation はタイムゾーンだけ差し替えた Policy を返します。
func (p Policy) WithLocation(loc *time.Location) Policy {
	p.Location = loc
	return p
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// civilDate は loc における暦日を UTC の0時として返します (日数差の計算用)。
func (p Policy) civilDate(t time.Time) time.Time {
	y, m, d := t.In(p.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOffset は now の暦日から t の暦日までの日数です。過去なら負。
func (p Policy) DayOffset(t, now time.Time) int {
	return int(p.civilDate(t).Sub(p.civilDate(now)).Hours() / 24)
}

// StartOfDay は loc における t の日付の0時を返します。
func (p Policy) StartOfDay(t time.Time) time.Time {
	loc := p.location()
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
