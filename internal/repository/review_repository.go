//go:generate mockery --name ReviewRepository --output ./mocks --outpkg mocks --case=underscore
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

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.Review, error)
	FindRecentBySubmissions(ctx context.Context, db *gorm.DB, submissionIDs []uuid.UUID, perSubmission int) (map[uuid.UUID][]model.Review, error)
	CountSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (int64, error)
	DeleteBySubmission(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) error
}

type gormReviewRepository struct{}

func NewGormReviewRepository() ReviewRepository {
	return &gormReviewRepository{}
}

func (r *gormReviewRepository) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	logger := middleware.GetLogger(ctx)
	review.ReviewedAt = utc(review.ReviewedAt)
	if err := tx.WithContext(ctx).Create(review).Error; err != nil {
		logger.Error("Error creating review in DB",
			"error", err,
			"submission_id", review.SubmissionID.String(),
		)
		return fmt.Errorf("gormReviewRepository.Create: %w", err)
	}
	return nil
}

func (r *gormReviewRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.Review, error) {
	logger := middleware.GetLogger(ctx)
	var reviews []model.Review
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("reviewed_at DESC").Find(&reviews)
	if result.Error != nil {
		logger.Error("Error finding reviews by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormReviewRepository.FindByUser: %w", result.Error)
	}
	return reviews, nil
}

// FindRecentBySubmissions は解答記録ごとに新しい順で最大 perSubmission 件の復習を返します
func (r *gormReviewRepository) FindRecentBySubmissions(ctx context.Context, db *gorm.DB, submissionIDs []uuid.UUID, perSubmission int) (map[uuid.UUID][]model.Review, error) {
	logger := middleware.GetLogger(ctx)
	out := make(map[uuid.UUID][]model.Review, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return out, nil
	}

	var reviews []model.Review
	result := db.WithContext(ctx).
		Where("submission_id IN ?", submissionIDs).
		Order("reviewed_at DESC").
		Find(&reviews)
	if result.Error != nil {
		logger.Error("Error finding recent reviews in DB", "error", result.Error, "submissions", len(submissionIDs))
		return nil, fmt.Errorf("gormReviewRepository.FindRecentBySubmissions: %w", result.Error)
	}

	for _, rv := range reviews {
		if len(out[rv.SubmissionID]) < perSubmission {
			out[rv.SubmissionID] = append(out[rv.SubmissionID], rv)
		}
	}
	return out, nil
}

func (r *gormReviewRepository) CountSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND reviewed_at >= ?", userID, utc(since)).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting reviews in DB", "error", result.Error, "user_id", userID.String())
		return 0, fmt.Errorf("gormReviewRepository.CountSince: %w", result.Error)
	}
	return count, nil
}

func (r *gormReviewRepository) DeleteBySubmission(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	if err := tx.WithContext(ctx).Where("submission_id = ?", submissionID).Delete(&model.Review{}).Error; err != nil {
		logger.Error("Error deleting reviews in DB", "error", err, "submission_id", submissionID.String())
		return fmt.Errorf("gormReviewRepository.DeleteBySubmission: %w", err)
	}
	return nil
}
