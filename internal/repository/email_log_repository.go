//go:generate mockery --name EmailLogRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *model.EmailLog) error
	SentSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, emailType string, since time.Time) (bool, error)
}

type gormEmailLogRepository struct{}

func NewGormEmailLogRepository() EmailLogRepository {
	return &gormEmailLogRepository{}
}

func (r *gormEmailLogRepository) Create(ctx context.Context, db *gorm.DB, log *model.EmailLog) error {
	logger := middleware.GetLogger(ctx)
	if !log.CreatedAt.IsZero() {
		log.CreatedAt = utc(log.CreatedAt)
	}
	if err := db.WithContext(ctx).Create(log).Error; err != nil {
		logger.Error("Error creating email log in DB", "error", err, "user_id", log.UserID.String(), "type", log.Type)
		return fmt.Errorf("gormEmailLogRepository.Create: %w", err)
	}
	return nil
}

// SentSince は since 以降に同じ種類のメールを送信済みかどうか
func (r *gormEmailLogRepository) SentSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, emailType string, since time.Time) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.EmailLog{}).
		Where("user_id = ? AND type = ? AND status = ? AND created_at >= ?", userID, emailType, model.EmailStatusSent, utc(since)).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking email log in DB", "error", result.Error, "user_id", userID.String())
		return false, fmt.Errorf("gormEmailLogRepository.SentSince: %w", result.Error)
	}
	return count > 0, nil
}
