// cmd/cli/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"algo_review_keep/internal/applog"
	"algo_review_keep/internal/cli"
	"algo_review_keep/internal/config"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/service"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(build, os.Stdin).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func build(ctx context.Context, configPath string) (*cli.App, error) {
	if err := config.LoadConfig(configPath); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := &config.Cfg
	logger := applog.New(os.Stderr, cfg.Log.Level, os.Getenv("APP_ENV"))

	db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == repository.DriverSQLite {
		if err := repository.Migrate(db); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	policy, err := service.NewPolicy(cfg.Schedule)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	mailer, err := service.NewMailer(ctx, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	subRepo := repository.NewGormSubmissionRepository()
	reviewRepo := repository.NewGormReviewRepository()
	return &cli.App{
		Config:  cfg,
		Logger:  logger,
		Store:   service.NewSessionStore(db, subRepo, reviewRepo, cfg, policy),
		Reviews: service.NewReviewService(db, subRepo, reviewRepo, cfg, policy),
		Reminders: service.NewReminderService(db, repository.NewGormUserRepository(), subRepo, reviewRepo,
			repository.NewGormEmailLogRepository(), mailer, policy),
		Close: sqlDB.Close,
	}, nil
}
