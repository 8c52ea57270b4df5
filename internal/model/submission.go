// internal/model/submission.go
package model

import (
	"time"

	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
)

const DefaultLanguage = "javascript"

// Submission は解いた問題の記録と、その復習スケジュールを表します
type Submission struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProblemID          int       `gorm:"not null;index" json:"problem_id"`
	SolvedAt           time.Time `gorm:"not null" json:"solved_at"`
	TimeSpent          int       `json:"time_spent"`          // 分
	PersonalDifficulty int       `json:"personal_difficulty"` // 1-5
	Notes              string    `json:"notes"`
	Solution           string    `json:"solution"`
	Language           string    `gorm:"not null" json:"language"`

	// スケジュール状態
	ReviewCount    int        `gorm:"not null" json:"review_count"`
	EaseFactor     float64    `gorm:"not null" json:"ease_factor"`
	Interval       int        `gorm:"column:interval_days;not null" json:"interval"`
	NextReviewDate *time.Time `gorm:"index" json:"next_review_date"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	Version        int        `gorm:"not null" json:"-"` // 楽観ロック用

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Problem *Problem `gorm:"foreignKey:ProblemID;references:ID" json:"problem,omitempty"`
	Reviews []Review `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) NextReviewAt() *time.Time { return s.NextReviewDate }
func (s *Submission) SolvedOn() time.Time      { return s.SolvedAt }

// ScheduleState はスケジュール関連カラムを scheduler.State に変換します
func (s *Submission) ScheduleState() scheduler.State {
	return scheduler.State{
		ReviewCount:    s.ReviewCount,
		EaseFactor:     s.EaseFactor,
		Interval:       s.Interval,
		NextReviewDate: s.NextReviewDate,
		LastReviewedAt: s.LastReviewedAt,
	}
}

// ApplySchedule は scheduler.State をスケジュール関連カラムに反映します
func (s *Submission) ApplySchedule(st scheduler.State) {
	s.ReviewCount = st.ReviewCount
	s.EaseFactor = st.EaseFactor
	s.Interval = st.Interval
	s.NextReviewDate = st.NextReviewDate
	s.LastReviewedAt = st.LastReviewedAt
}

// Title は関連する問題のタイトル (未Preloadなら空)
func (s *Submission) Title() string {
	if s.Problem == nil {
		return ""
	}
	return s.Problem.Title
}

// CreateSubmissionRequest は解答記録の作成リクエストDTO
type CreateSubmissionRequest struct {
	ProblemID          int        `json:"problem_id" validate:"required,gt=0"`
	Title              string     `json:"title" validate:"required,max=200"`
	TitleSlug          string     `json:"title_slug" validate:"required,max=200"`
	Difficulty         int        `json:"difficulty" validate:"required,min=1,max=3"`
	Topic              string     `json:"topic" validate:"omitempty,max=100"`
	SolvedAt           *time.Time `json:"solved_at,omitempty"`
	TimeSpent          int        `json:"time_spent" validate:"min=0,max=1440"`
	PersonalDifficulty int        `json:"personal_difficulty" validate:"omitempty,min=1,max=5"`
	Notes              string     `json:"notes" validate:"max=10000"`
	Solution           string     `json:"solution" validate:"max=50000"`
	Language           string     `json:"language" validate:"omitempty,max=30"`
}

// NextReviewInfo は次回復習のサマリー
type NextReviewInfo struct {
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
	Interval  int       `json:"interval"`
}

// DueItemResponse は復習対象1件のレスポンスDTO
type DueItemResponse struct {
	Submission    *Submission `json:"submission"`
	RecentReviews []Review    `json:"recent_reviews"`
}
