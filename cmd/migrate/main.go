// cmd/migrate/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"algo_review_keep/internal/applog"
	"algo_review_keep/internal/config"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath string
		seedEmail  string
		seedName   string
	)
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create or update the database schema",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(configPath); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := applog.New(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))

			db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := repository.Migrate(db); err != nil {
				return err
			}
			logger.Info("Migration completed", "driver", config.Cfg.Database.Driver)

			if seedEmail == "" {
				return nil
			}
			// 開発用のユーザーを作成し、ID を表示する
			u := &model.User{
				ID:                 uuid.New(),
				Email:              seedEmail,
				Name:               seedName,
				EmailNotifications: true,
				ReviewHour:         9,
				Timezone:           time.UTC.String(),
			}
			if err := repository.NewGormUserRepository().Create(cmd.Context(), db, u); err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.ID.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "configs", "directory containing config.yaml")
	cmd.Flags().StringVar(&seedEmail, "seed-user", "", "create a user with this email and print its ID")
	cmd.Flags().StringVar(&seedName, "seed-name", "Developer", "name for --seed-user")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
