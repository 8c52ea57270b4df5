// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"algo_review_keep/internal/applog"
	"algo_review_keep/internal/catalog"
	"algo_review_keep/internal/config"
	"algo_review_keep/internal/handlers"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/service"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) != "production" {
		// .env が無くても続行する
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file loaded:", err)
		}
		appEnv = os.Getenv("APP_ENV")
	}
	devMode := strings.ToLower(appEnv) == "dev"

	log.Println("Log Config Loading...")
	if err := config.LoadConfig("../configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := applog.New(os.Stderr, config.Cfg.Log.Level, appEnv)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("version", config.AppVersion), slog.String("APP_ENV", appEnv))

	// 1. Database
	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()
	if config.Cfg.Database.Driver == repository.DriverSQLite {
		// ローカルの SQLite はスキーマを自動作成する
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error migrating SQLite database", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// 2. Dependency Injection
	policy, err := service.NewPolicy(config.Cfg.Schedule)
	if err != nil {
		slog.Error("Invalid schedule configuration", slog.Any("error", err))
		os.Exit(1)
	}
	mailer, err := service.NewMailer(context.Background(), &config.Cfg)
	if err != nil {
		slog.Error("Error initializing mailer", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewGormUserRepository()
	subRepo := repository.NewGormSubmissionRepository()
	probRepo := repository.NewGormProblemRepository()
	reviewRepo := repository.NewGormReviewRepository()
	emailRepo := repository.NewGormEmailLogRepository()

	submissionService := service.NewSubmissionService(db, subRepo, probRepo, reviewRepo)
	reviewService := service.NewReviewService(db, subRepo, reviewRepo, &config.Cfg, policy)
	reminderService := service.NewReminderService(db, userRepo, subRepo, reviewRepo, emailRepo, mailer, policy)

	router := handlers.NewRouter(&config.Cfg, logger, db, handlers.Handlers{
		Submissions: handlers.NewSubmissionHandler(submissionService, logger),
		Reviews:     handlers.NewReviewHandler(reviewService, logger),
		Problems:    handlers.NewProblemHandler(catalog.NewGormCatalog(db, probRepo), submissionService, logger),
		Cron:        handlers.NewCronHandler(reminderService, logger),
	}, devMode)

	// 3. Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // リマインダー送信ジョブを考慮
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
