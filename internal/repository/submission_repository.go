//go:generate mockery --name SubmissionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, submission *model.Submission) error
	FindByID(ctx context.Context, db *gorm.DB, userID, submissionID uuid.UUID) (*model.Submission, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Submission, error)
	FindScheduled(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Submission, error)
	FindDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, unscheduledBefore time.Time) ([]*model.Submission, error)
	UpdateSchedule(ctx context.Context, tx *gorm.DB, userID, submissionID uuid.UUID, expectedVersion int, state scheduler.State) error
	Delete(ctx context.Context, tx *gorm.DB, userID, submissionID uuid.UUID) error
	SumSolvedSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (count int64, minutes int64, err error)
}

type gormSubmissionRepository struct{}

func NewGormSubmissionRepository() SubmissionRepository {
	return &gormSubmissionRepository{}
}

func (r *gormSubmissionRepository) Create(ctx context.Context, tx *gorm.DB, submission *model.Submission) error {
	logger := middleware.GetLogger(ctx)
	submission.SolvedAt = utc(submission.SolvedAt)
	submission.NextReviewDate = utcPtr(submission.NextReviewDate)
	submission.LastReviewedAt = utcPtr(submission.LastReviewedAt)
	result := tx.WithContext(ctx).Omit("Problem", "Reviews").Create(submission)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create submission", "error", result.Error, "submission_id", submission.ID.String())
			return model.ErrConflict
		}
		logger.Error("Error creating submission in DB",
			"error", result.Error,
			"user_id", submission.UserID.String(),
			"problem_id", submission.ProblemID,
		)
		return fmt.Errorf("gormSubmissionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSubmissionRepository) FindByID(ctx context.Context, db *gorm.DB, userID, submissionID uuid.UUID) (*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submission model.Submission
	result := db.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ? AND id = ?", userID, submissionID).
		First(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding submission by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"submission_id", submissionID.String(),
		)
		return nil, fmt.Errorf("gormSubmissionRepository.FindByID: %w", result.Error)
	}
	return &submission, nil
}

func (r *gormSubmissionRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submissions []*model.Submission
	result := db.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ?", userID).
		Order("solved_at DESC").
		Find(&submissions)
	if result.Error != nil {
		logger.Error("Error finding submissions by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormSubmissionRepository.FindByUser: %w", result.Error)
	}
	return submissions, nil
}

func (r *gormSubmissionRepository) FindScheduled(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submissions []*model.Submission
	result := db.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ? AND next_review_date IS NOT NULL", userID).
		Order("next_review_date ASC").
		Find(&submissions)
	if result.Error != nil {
		logger.Error("Error finding scheduled submissions in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormSubmissionRepository.FindScheduled: %w", result.Error)
	}
	return submissions, nil
}

// FindDue は予定日が now 以前、または未スケジュールで unscheduledBefore 以前に解いたものを返します。
// 並び順は呼び出し側 (selector.SortDue) で決める
func (r *gormSubmissionRepository) FindDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time, unscheduledBefore time.Time) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx)
	var submissions []*model.Submission
	result := db.WithContext(ctx).
		Preload("Problem").
		Where("user_id = ?", userID).
		Where(db.Where("next_review_date <= ?", utc(now)).
			Or("next_review_date IS NULL AND solved_at <= ?", utc(unscheduledBefore))).
		Order("next_review_date ASC").
		Find(&submissions)
	if result.Error != nil {
		logger.Error("Error finding due submissions in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormSubmissionRepository.FindDue: %w", result.Error)
	}
	return submissions, nil
}

// UpdateSchedule はバージョンが一致する場合のみスケジュールを更新します。
// 行が存在しない場合は ErrNotFound、バージョン不一致は ErrConflict
func (r *gormSubmissionRepository) UpdateSchedule(ctx context.Context, tx *gorm.DB, userID, submissionID uuid.UUID, expectedVersion int, state scheduler.State) error {
	logger := middleware.GetLogger(ctx)
	updates := map[string]interface{}{
		"review_count":     state.ReviewCount,
		"ease_factor":      state.EaseFactor,
		"interval_days":    state.Interval,
		"next_review_date": utcPtr(state.NextReviewDate),
		"last_reviewed_at": utcPtr(state.LastReviewedAt),
		"version":          gorm.Expr("version + 1"),
		"updated_at":       nowUTC(),
	}
	result := tx.WithContext(ctx).
		Model(&model.Submission{}).
		Where("user_id = ? AND id = ? AND version = ?", userID, submissionID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating submission schedule in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"submission_id", submissionID.String(),
		)
		return fmt.Errorf("gormSubmissionRepository.UpdateSchedule: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&model.Submission{}).
		Where("user_id = ? AND id = ?", userID, submissionID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("gormSubmissionRepository.UpdateSchedule: %w", err)
	}
	if count == 0 {
		return model.ErrNotFound
	}
	logger.Warn("Optimistic lock failed on submission schedule",
		"submission_id", submissionID.String(),
		"expected_version", expectedVersion,
	)
	return model.ErrConflict
}

func (r *gormSubmissionRepository) Delete(ctx context.Context, tx *gorm.DB, userID, submissionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ? AND id = ?", userID, submissionID).Delete(&model.Submission{})
	if result.Error != nil {
		logger.Error("Error deleting submission in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"submission_id", submissionID.String(),
		)
		return fmt.Errorf("gormSubmissionRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSubmissionRepository) SumSolvedSince(ctx context.Context, db *gorm.DB, userID uuid.UUID, since time.Time) (int64, int64, error) {
	logger := middleware.GetLogger(ctx)
	var row struct {
		Count   int64
		Minutes int64
	}
	result := db.WithContext(ctx).
		Model(&model.Submission{}).
		Select("COUNT(*) AS count, COALESCE(SUM(time_spent), 0) AS minutes").
		Where("user_id = ? AND solved_at >= ?", userID, utc(since)).
		Scan(&row)
	if result.Error != nil {
		logger.Error("Error summing solved submissions in DB", "error", result.Error, "user_id", userID.String())
		return 0, 0, fmt.Errorf("gormSubmissionRepository.SumSolvedSince: %w", result.Error)
	}
	return row.Count, row.Minutes, nil
}
