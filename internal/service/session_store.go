package service

import (
	"context"
	"time"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/scheduler"
	"algo_review_keep/internal/selector"
	"algo_review_keep/internal/session"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sessionStore は復習セッション用に gorm リポジトリを session.Store として公開します
type sessionStore struct {
	*reviewService
}

func NewSessionStore(db *gorm.DB, subRepo repository.SubmissionRepository, reviewRepo repository.ReviewRepository, cfg *config.Config, policy selector.Policy) session.Store {
	return &sessionStore{
		reviewService: &reviewService{
			db:         db,
			subRepo:    subRepo,
			reviewRepo: reviewRepo,
			cfg:        cfg,
			policy:     policy,
			clock:      time.Now,
		},
	}
}

func (s *sessionStore) ListDueItems(ctx context.Context, userID uuid.UUID, now time.Time) ([]session.Item, error) {
	due, err := s.findDue(ctx, s.db, userID, now)
	if err != nil {
		return nil, storeError(err, "", "復習対象の取得に失敗しました。")
	}
	items := make([]session.Item, len(due))
	for i, sub := range due {
		items[i] = toSessionItem(sub)
	}
	return items, nil
}

func (s *sessionStore) LoadScheduleState(ctx context.Context, userID, itemID uuid.UUID) (scheduler.State, int, error) {
	sub, err := s.subRepo.FindByID(ctx, s.db, userID, itemID)
	if err != nil {
		return scheduler.State{}, 0, storeError(err, "指定された解答記録が見つかりません。", "スケジュールの取得に失敗しました。")
	}
	return sub.ScheduleState(), sub.Version, nil
}

func (s *sessionStore) SaveScheduleState(ctx context.Context, userID uuid.UUID, change session.Change) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.recordReview(ctx, tx, userID, change)
		return err
	})
	if err != nil {
		return storeError(err, "指定された解答記録が見つかりません。", "復習結果の保存に失敗しました。")
	}
	return nil
}

func toSessionItem(sub *model.Submission) session.Item {
	item := session.Item{
		ID:        sub.ID,
		ProblemID: sub.ProblemID,
		Language:  sub.Language,
		Solution:  sub.Solution,
		Notes:     sub.Notes,
		SolvedAt:  sub.SolvedAt,
		Schedule:  sub.ScheduleState(),
		Version:   sub.Version,
	}
	if sub.Problem != nil {
		item.Title = sub.Problem.Title
		item.TitleSlug = sub.Problem.TitleSlug
		item.Difficulty = sub.Problem.Difficulty
	}
	return item
}
