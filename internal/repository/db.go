package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"algo_review_keep/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"               // postgresドライバ
	"gorm.io/driver/sqlite"                 // ローカル開発・テスト用
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDB は driver に応じた GORM 接続を生成します
func NewDB(driver, databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {
	// APP_ENV=dev の場合は全クエリを出力
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	dialector, err := openDialector(driver, databaseURL)
	if err != nil {
		appLogger.Error("Unsupported database driver", slog.String("driver", driver))
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
		// SQLite の一意制約違反を gorm.ErrDuplicatedKey に変換する
		TranslateError: driver == DriverSQLite,
		NowFunc:        nowUTC,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err), slog.String("driver", driver))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if driver == DriverSQLite {
		// SQLite は書き込みが直列なので接続は1本
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", driver))
	return db, nil
}

func openDialector(driver, databaseURL string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres, "":
		return postgres.Open(databaseURL), nil
	case DriverSQLite:
		return sqlite.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("repository.NewDB: unsupported driver %q", driver)
	}
}

// Migrate はテーブルを作成・更新します
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Problem{},
		&model.Submission{},
		&model.Review{},
		&model.EmailLog{},
	); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	return nil
}
