package service

import (
	"context"
	"testing"
	"time"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/selector"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// setupTestDB はテストごとに独立したインメモリDBを作成します
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.ReviewLimit = 20
	cfg.App.RecentReviews = 5
	return cfg
}

func newTestSubmissionService(db *gorm.DB, now time.Time) *submissionService {
	return &submissionService{
		db:         db,
		subRepo:    repository.NewGormSubmissionRepository(),
		probRepo:   repository.NewGormProblemRepository(),
		reviewRepo: repository.NewGormReviewRepository(),
		clock:      fixedClock(now),
	}
}

func newTestReviewService(db *gorm.DB, cfg *config.Config, now time.Time) *reviewService {
	return &reviewService{
		db:         db,
		subRepo:    repository.NewGormSubmissionRepository(),
		reviewRepo: repository.NewGormReviewRepository(),
		cfg:        cfg,
		policy:     selector.DefaultPolicy(),
		clock:      fixedClock(now),
	}
}

// solve は now 時点で problemID を解いた記録を作成します
func solve(t *testing.T, db *gorm.DB, userID uuid.UUID, problemID int, solvedAt time.Time) *model.Submission {
	t.Helper()
	svc := newTestSubmissionService(db, solvedAt)
	sub, err := svc.CreateSubmission(context.Background(), userID, &model.CreateSubmissionRequest{
		ProblemID:  problemID,
		Title:      "Problem " + uuid.NewString()[:8],
		TitleSlug:  "problem-" + uuid.NewString(),
		Difficulty: model.DifficultyMedium,
		Notes:      "use a hash map",
		Solution:   "func twoSum() {}",
	})
	require.NoError(t, err)
	return sub
}

func createUser(t *testing.T, db *gorm.DB, notifications bool) *model.User {
	t.Helper()
	u := &model.User{
		ID:                 uuid.New(),
		Email:              uuid.NewString() + "@example.com",
		Name:               "Tester",
		EmailNotifications: notifications,
		ReviewHour:         9,
		Timezone:           "UTC",
	}
	require.NoError(t, repository.NewGormUserRepository().Create(context.Background(), db, u))
	return u
}
