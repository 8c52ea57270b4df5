//go:build integration

// postgres_integration_test.go
// Docker 上の PostgreSQL に対してリポジトリを検証します。
//
//	go test -tags integration ./internal/repository/...
package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type PostgresSuite struct {
	suite.Suite

	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
	ctx      context.Context
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := dockertest.NewPool("")
	s.Require().NoError(err, "Could not construct pool")
	pool.MaxWait = 120 * time.Second
	s.pool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=algo_review_keep",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err, "Could not start PostgreSQL resource")
	s.resource = resource

	// devcontainer からは TEST_DB_HOST=host.docker.internal を指定する
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=user password=secret dbname=algo_review_keep sslmode=disable TimeZone=UTC",
		host, resource.GetPort("5432/tcp"))

	err = pool.Retry(func() error {
		db, err := NewDB(DriverPostgres, dsn, logger)
		if err != nil {
			return err
		}
		s.db = db
		return nil
	})
	s.Require().NoError(err, "Could not connect to PostgreSQL")
	s.Require().NoError(Migrate(s.db))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if s.resource != nil {
		if err := s.pool.Purge(s.resource); err != nil {
			s.T().Logf("Could not purge resource: %s", err)
		}
	}
}

func (s *PostgresSuite) SetupTest() {
	for _, table := range []string{"email_logs", "reviews", "submissions", "problems", "users"} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
}

func (s *PostgresSuite) TestDuplicateEmailIsConflict() {
	repo := NewGormUserRepository()
	u := &model.User{ID: uuid.New(), Email: "dup@example.com", Timezone: "UTC", ReviewHour: 9}
	s.Require().NoError(repo.Create(s.ctx, s.db, u))

	// TranslateError 無効の PostgreSQL では pgconn のエラーコードで判定する
	err := repo.Create(s.ctx, s.db, &model.User{ID: uuid.New(), Email: "dup@example.com", Timezone: "UTC", ReviewHour: 9})
	s.ErrorIs(err, model.ErrConflict)
}

func (s *PostgresSuite) TestUpdateScheduleVersioning() {
	repo := NewGormSubmissionRepository()
	userID := uuid.New()
	s.Require().NoError(NewGormProblemRepository().Upsert(s.ctx, s.db, &model.Problem{ID: 1, Title: "Two Sum", TitleSlug: "two-sum", Difficulty: model.DifficultyEasy}))

	now := time.Now().UTC().Truncate(time.Microsecond)
	sub := newSubmission(userID, 1, now, ptr(now.AddDate(0, 0, 1)))
	s.Require().NoError(repo.Create(s.ctx, s.db, sub))

	next := now.AddDate(0, 0, 6)
	state := scheduler.State{ReviewCount: 1, EaseFactor: 2.5, Interval: 6, NextReviewDate: &next, LastReviewedAt: &now}
	s.Require().NoError(repo.UpdateSchedule(s.ctx, s.db, userID, sub.ID, 1, state))
	s.ErrorIs(repo.UpdateSchedule(s.ctx, s.db, userID, sub.ID, 1, state), model.ErrConflict)

	got, err := repo.FindByID(s.ctx, s.db, userID, sub.ID)
	s.Require().NoError(err)
	s.Equal(2, got.Version)
	s.Require().NotNil(got.NextReviewDate)
	s.WithinDuration(next, *got.NextReviewDate, time.Millisecond)
	s.Equal("Two Sum", got.Title())
}

func (s *PostgresSuite) TestFindDueAndSearch() {
	subRepo := NewGormSubmissionRepository()
	probRepo := NewGormProblemRepository()
	userID := uuid.New()
	now := time.Now().UTC()

	s.Require().NoError(probRepo.Upsert(s.ctx, s.db, &model.Problem{ID: 1, Title: "Two Sum", TitleSlug: "two-sum", Difficulty: model.DifficultyEasy}))
	s.Require().NoError(probRepo.Upsert(s.ctx, s.db, &model.Problem{ID: 20, Title: "Valid Parentheses", TitleSlug: "valid-parentheses", Difficulty: model.DifficultyEasy}))

	s.Require().NoError(subRepo.Create(s.ctx, s.db, newSubmission(userID, 1, now.AddDate(0, 0, -3), ptr(now.AddDate(0, 0, -1)))))
	s.Require().NoError(subRepo.Create(s.ctx, s.db, newSubmission(userID, 20, now, ptr(now.AddDate(0, 0, 1)))))

	due, err := subRepo.FindDue(s.ctx, s.db, userID, now, now.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.Equal(1, due[0].ProblemID)

	found, err := probRepo.Search(s.ctx, s.db, "PAREN", 20)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(20, found[0].ID)
}
