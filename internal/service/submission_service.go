//go:generate mockery --name SubmissionService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"time"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, userID uuid.UUID, req *model.CreateSubmissionRequest) (*model.Submission, error)
	ListSubmissions(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error)
	DeleteSubmission(ctx context.Context, userID, submissionID uuid.UUID) error
}

type submissionService struct {
	db         *gorm.DB
	subRepo    repository.SubmissionRepository
	probRepo   repository.ProblemRepository
	reviewRepo repository.ReviewRepository
	clock      func() time.Time
}

func NewSubmissionService(db *gorm.DB, subRepo repository.SubmissionRepository, probRepo repository.ProblemRepository, reviewRepo repository.ReviewRepository) SubmissionService {
	return &submissionService{
		db:         db,
		subRepo:    subRepo,
		probRepo:   probRepo,
		reviewRepo: reviewRepo,
		clock:      time.Now,
	}
}

// CreateSubmission は問題を登録 (既存なら更新) し、解答記録と初回スケジュールを作成します
func (s *submissionService) CreateSubmission(ctx context.Context, userID uuid.UUID, req *model.CreateSubmissionRequest) (*model.Submission, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "problem_id", req.ProblemID)

	solvedAt := s.clock()
	if req.SolvedAt != nil {
		if req.SolvedAt.After(solvedAt) {
			return nil, model.NewAppError("VALIDATION_ERROR", "解答日時に未来の日時は指定できません。", "solved_at", model.ErrInvalidInput)
		}
		solvedAt = *req.SolvedAt
	}
	language := req.Language
	if language == "" {
		language = model.DefaultLanguage
	}

	problem := &model.Problem{
		ID:         req.ProblemID,
		Title:      req.Title,
		TitleSlug:  req.TitleSlug,
		Difficulty: req.Difficulty,
		Topic:      req.Topic,
	}
	submission := &model.Submission{
		ID:                 uuid.New(),
		UserID:             userID,
		ProblemID:          req.ProblemID,
		SolvedAt:           solvedAt,
		TimeSpent:          req.TimeSpent,
		PersonalDifficulty: req.PersonalDifficulty,
		Notes:              req.Notes,
		Solution:           req.Solution,
		Language:           language,
		Version:            1,
	}
	submission.ApplySchedule(scheduler.Initial(solvedAt))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.probRepo.Upsert(ctx, tx, problem); err != nil {
			logger.Error("Failed to upsert problem", "error", err)
			return err
		}
		if err := s.subRepo.Create(ctx, tx, submission); err != nil {
			logger.Error("Failed to create submission", "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "問題が見つかりません。", "解答記録の保存に失敗しました。")
	}

	submission.Problem = problem
	logger.Info("Submission created", "submission_id", submission.ID, "next_review_date", submission.NextReviewDate)
	return submission, nil
}

func (s *submissionService) ListSubmissions(ctx context.Context, userID uuid.UUID) ([]*model.Submission, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	submissions, err := s.subRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list submissions", "error", err)
		return nil, storeError(err, "", "解答記録の取得に失敗しました。")
	}
	return submissions, nil
}

// DeleteSubmission は解答記録とそのスケジュール・復習履歴を削除します
func (s *submissionService) DeleteSubmission(ctx context.Context, userID, submissionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "submission_id", submissionID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 他ユーザーの復習履歴を消さないよう、先に所有者を確認する
		if _, err := s.subRepo.FindByID(ctx, tx, userID, submissionID); err != nil {
			return err
		}
		if err := s.reviewRepo.DeleteBySubmission(ctx, tx, submissionID); err != nil {
			return err
		}
		return s.subRepo.Delete(ctx, tx, userID, submissionID)
	})
	if err != nil {
		logger.Warn("Failed to delete submission", "error", err)
		return storeError(err, "指定された解答記録が見つかりません。", "解答記録の削除に失敗しました。")
	}

	logger.Info("Submission deleted")
	return nil
}
