//go:generate mockery --name ReviewService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"time"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/scheduler"
	"algo_review_keep/internal/selector"
	"algo_review_keep/internal/session"
	"algo_review_keep/internal/stats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxScheduleHorizon = 365

type ReviewService interface {
	GetDueReviews(ctx context.Context, userID uuid.UUID) ([]*model.DueItemResponse, error)
	SubmitReview(ctx context.Context, userID, submissionID uuid.UUID, req *model.SubmitReviewRequest) (*model.SubmitReviewResponse, error)
	GetSchedule(ctx context.Context, userID uuid.UUID, horizonDays int) (*model.ScheduleResponse, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*stats.Summary, error)
}

type reviewService struct {
	db         *gorm.DB
	subRepo    repository.SubmissionRepository
	reviewRepo repository.ReviewRepository
	cfg        *config.Config
	policy     selector.Policy
	clock      func() time.Time
}

func NewReviewService(db *gorm.DB, subRepo repository.SubmissionRepository, reviewRepo repository.ReviewRepository, cfg *config.Config, policy selector.Policy) ReviewService {
	return &reviewService{
		db:         db,
		subRepo:    subRepo,
		reviewRepo: reviewRepo,
		cfg:        cfg,
		policy:     policy,
		clock:      time.Now,
	}
}

// NewPolicy は schedule 設定から selector.Policy を組み立てます
func NewPolicy(cfg config.ScheduleConfig) (selector.Policy, error) {
	loc, err := cfg.Location()
	if err != nil {
		return selector.Policy{}, err
	}
	p := selector.DefaultPolicy().WithLocation(loc)
	if cfg.FirstReviewGrace > 0 {
		p.FirstReviewGrace = cfg.FirstReviewGrace
	}
	if cfg.WeekHorizonDays > 0 {
		p.WeekHorizonDays = cfg.WeekHorizonDays
	}
	if cfg.LoadHorizonDays > 0 {
		p.LoadHorizonDays = cfg.LoadHorizonDays
	}
	return p, nil
}

// GetDueReviews は復習対象を優先順で返します。件数は app.review_limit まで
func (s *reviewService) GetDueReviews(ctx context.Context, userID uuid.UUID) ([]*model.DueItemResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	due, err := s.findDue(ctx, s.db, userID, s.clock())
	if err != nil {
		logger.Error("Failed to find due submissions from repository", "error", err)
		return nil, storeError(err, "", "復習対象の取得に失敗しました。")
	}
	if limit := s.cfg.App.ReviewLimit; limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	ids := make([]uuid.UUID, len(due))
	for i, sub := range due {
		ids[i] = sub.ID
	}
	recent, err := s.reviewRepo.FindRecentBySubmissions(ctx, s.db, ids, s.recentReviews())
	if err != nil {
		logger.Error("Failed to find recent reviews from repository", "error", err)
		return nil, storeError(err, "", "復習履歴の取得に失敗しました。")
	}

	responses := make([]*model.DueItemResponse, 0, len(due))
	for _, sub := range due {
		reviews := recent[sub.ID]
		if reviews == nil {
			reviews = []model.Review{}
		}
		responses = append(responses, &model.DueItemResponse{Submission: sub, RecentReviews: reviews})
	}

	logger.Info("Successfully retrieved due reviews", "count", len(responses))
	return responses, nil
}

// SubmitReview は評価を受け取り、読み込み・計算・保存を1トランザクションで行います
func (s *reviewService) SubmitReview(ctx context.Context, userID, submissionID uuid.UUID, req *model.SubmitReviewRequest) (*model.SubmitReviewResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "submission_id", submissionID)

	rating := scheduler.Rating(req.Difficulty)
	if !rating.IsValid() {
		return nil, model.NewAppError("VALIDATION_ERROR", "評価は1から5で指定してください。", "difficulty", model.ErrInvalidInput)
	}
	now := s.clock()

	var resp *model.SubmitReviewResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.subRepo.FindByID(ctx, tx, userID, submissionID)
		if err != nil {
			return err
		}

		prior := sub.ScheduleState()
		res, err := scheduler.ComputeNextSchedule(prior, rating, now)
		if err != nil {
			return err
		}

		review, err := s.recordReview(ctx, tx, userID, session.Change{
			ItemID:          sub.ID,
			ExpectedVersion: sub.Version,
			Prior:           prior,
			Next:            prior.Advance(res, now),
			Rating:          rating,
			ReviewedAt:      now,
			TimeSpent:       req.TimeSpent,
			Notes:           req.Notes,
		})
		if err != nil {
			return err
		}

		resp = &model.SubmitReviewResponse{
			Review: review,
			NextReview: model.NextReviewInfo{
				Date:      res.NextReviewDate,
				DaysUntil: res.Interval,
				Interval:  res.Interval,
			},
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to submit review", "error", err, "rating", int(rating))
		return nil, storeError(err, "指定された解答記録が見つかりません。", "復習結果の保存に失敗しました。")
	}

	logger.Info("Review submitted", "rating", int(rating), "interval", resp.NextReview.Interval)
	return resp, nil
}

// GetSchedule は予定済みの問題を分類して返します。horizonDays が0なら既定値
func (s *reviewService) GetSchedule(ctx context.Context, userID uuid.UUID, horizonDays int) (*model.ScheduleResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if horizonDays < 0 || horizonDays > maxScheduleHorizon {
		return nil, model.NewAppError("VALIDATION_ERROR", fmt.Sprintf("horizonは0から%dで指定してください。", maxScheduleHorizon), "horizon", model.ErrInvalidInput)
	}

	subs, err := s.subRepo.FindScheduled(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find scheduled submissions from repository", "error", err)
		return nil, storeError(err, "", "スケジュールの取得に失敗しました。")
	}

	now := s.clock()
	c := selector.Classify(s.policy, subs, now, horizonDays)
	resp := &model.ScheduleResponse{
		Classification: c,
		Upcoming:       selector.Within(s.policy, subs, now, model.UpcomingDays),
		MaxLoad:        c.MaxLoad(),
		Total:          c.Total(),
	}
	if peak, ok := c.PeakDay(); ok && peak.Count > 0 {
		resp.PeakDay = &peak
	}

	logger.Info("Schedule classified", "total", resp.Total, "overdue", len(c.Overdue), "due_today", len(c.DueToday))
	return resp, nil
}

func (s *reviewService) GetStats(ctx context.Context, userID uuid.UUID) (*stats.Summary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	reviews, err := s.reviewRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to find reviews from repository", "error", err)
		return nil, storeError(err, "", "復習履歴の取得に失敗しました。")
	}

	entries := make([]stats.Entry, len(reviews))
	for i, r := range reviews {
		entries[i] = stats.Entry{Rating: scheduler.Rating(r.Difficulty), ReviewedAt: r.ReviewedAt}
	}
	summary := stats.Summarize(entries, s.clock())
	return &summary, nil
}

func (s *reviewService) findDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, now time.Time) ([]*model.Submission, error) {
	return findDue(ctx, s.subRepo, db, s.policy, userID, now)
}

// findDue は期日の来た解答記録を対象になった順で返します
func findDue(ctx context.Context, repo repository.SubmissionRepository, db *gorm.DB, policy selector.Policy, userID uuid.UUID, now time.Time) ([]*model.Submission, error) {
	due, err := repo.FindDue(ctx, db, userID, now, now.Add(-policy.FirstReviewGrace))
	if err != nil {
		return nil, err
	}
	selector.SortDue(policy, due)
	return due, nil
}

// recordReview はバージョン付きでスケジュールを更新し、復習履歴を追加します
func (s *reviewService) recordReview(ctx context.Context, tx *gorm.DB, userID uuid.UUID, change session.Change) (*model.Review, error) {
	if err := s.subRepo.UpdateSchedule(ctx, tx, userID, change.ItemID, change.ExpectedVersion, change.Next); err != nil {
		return nil, err
	}
	review := &model.Review{
		ID:                 uuid.New(),
		SubmissionID:       change.ItemID,
		UserID:             userID,
		Difficulty:         int(change.Rating),
		TimeSpent:          change.TimeSpent,
		Notes:              change.Notes,
		ReviewedAt:         change.ReviewedAt,
		IntervalSnapshot:   change.Next.Interval,
		EaseFactorSnapshot: change.Next.EaseFactor,
	}
	if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) recentReviews() int {
	if s.cfg.App.RecentReviews > 0 {
		return s.cfg.App.RecentReviews
	}
	return config.DefaultRecentReviews
}
