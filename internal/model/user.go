package model

import (
	"time"

	"github.com/google/uuid"
)

// User は通知設定を持つ利用者。作成・認証はこのサービスの外で行う
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Name               string    `json:"name"`
	EmailNotifications bool      `gorm:"not null" json:"email_notifications"`
	ReviewHour         int       `gorm:"not null" json:"review_hour"`
	Timezone           string    `gorm:"not null;default:'UTC'" json:"timezone"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
