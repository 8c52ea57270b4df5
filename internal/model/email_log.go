package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmailTypeReviewReminder = "review_reminder"
	EmailTypeWeeklySummary  = "weekly_summary"

	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog は送信したメールの記録
type EmailLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         string    `gorm:"not null" json:"type"`
	Status       string    `gorm:"not null" json:"status"`
	ProblemCount int       `json:"problem_count"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (EmailLog) TableName() string {
	return "email_logs"
}

// ReminderResult はユーザー1人分の送信結果
type ReminderResult struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Problems int       `json:"problems"`
	Status   string    `json:"status"`
}

// ReminderSummary はリマインダー送信ジョブの結果
type ReminderSummary struct {
	UsersProcessed int              `json:"users_processed"`
	EmailsSent     int              `json:"emails_sent"`
	EmailsFailed   int              `json:"emails_failed"`
	Timestamp      time.Time        `json:"timestamp"`
	Results        []ReminderResult `json:"results"`
}
