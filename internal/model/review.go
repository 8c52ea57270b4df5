// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Review は復習1回分の記録 (追記のみ)
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Difficulty   int       `gorm:"not null" json:"difficulty"` // 想起度 1-5
	TimeSpent    int       `json:"time_spent"`
	Notes        string    `json:"notes,omitempty"`
	ReviewedAt   time.Time `gorm:"not null;index" json:"reviewed_at"`
	// 評価後のスケジュール (履歴表示用)
	IntervalSnapshot   int     `json:"interval"`
	EaseFactorSnapshot float64 `json:"ease_factor"`
}

func (Review) TableName() string {
	return "reviews"
}

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	TimeSpent  int    `json:"time_spent" validate:"min=0,max=1440"`
	Notes      string `json:"notes" validate:"max=10000"`
}

// SubmitReviewResponse は復習結果送信のレスポンスDTO
type SubmitReviewResponse struct {
	Review     *Review        `json:"review"`
	NextReview NextReviewInfo `json:"next_review"`
}
