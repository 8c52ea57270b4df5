package model

import "algo_review_keep/internal/selector"

// UpcomingDays は一覧表示する予定の範囲 (日)
const UpcomingDays = 30

// ScheduleResponse はスケジュール画面用のレスポンスDTO
type ScheduleResponse struct {
	selector.Classification[*Submission]
	Upcoming []*Submission    `json:"upcoming"`
	PeakDay  *selector.DayLoad `json:"peak_day,omitempty"`
	MaxLoad  int              `json:"max_load"`
	Total    int              `json:"total"`
}
