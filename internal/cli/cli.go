// Package cli は復習セッションやリマインダー送信をコマンドラインから実行します。
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/service"
	"algo_review_keep/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// App はコマンドが使う依存関係
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     session.Store
	Reviews   service.ReviewService
	Reminders service.ReminderService
	Clock     func() time.Time
	Close     func() error
}

// Builder は設定ファイルのパスから App を組み立てます
type Builder func(ctx context.Context, configPath string) (*App, error)

type rootOptions struct {
	configPath string
	userID     string
	in         io.Reader
	app        *App
}

// user は --user フラグを UUID として解釈します
func (o *rootOptions) user() (uuid.UUID, error) {
	if o.userID == "" {
		return uuid.Nil, fmt.Errorf("--user is required")
	}
	id, err := uuid.Parse(o.userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--user must be a UUID: %w", err)
	}
	return id, nil
}

// NewRootCmd はサブコマンドを登録したルートコマンドを返します
func NewRootCmd(build Builder, in io.Reader) *cobra.Command {
	opts := &rootOptions{in: in}
	if opts.in == nil {
		opts.in = os.Stdin
	}

	root := &cobra.Command{
		Use:           "algo-review",
		Short:         "Spaced-repetition review for solved algorithm problems",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := build(cmd.Context(), opts.configPath)
			if err != nil {
				return err
			}
			if app.Clock == nil {
				app.Clock = time.Now
			}
			opts.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.app != nil && opts.app.Close != nil {
				return opts.app.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs", "directory containing config.yaml")
	root.PersistentFlags().StringVarP(&opts.userID, "user", "u", os.Getenv("ALGO_REVIEW_USER"), "user ID (UUID)")

	root.AddCommand(
		newReviewCmd(opts),
		newScheduleCmd(opts),
		newStatsCmd(opts),
		newRemindCmd(opts),
	)
	return root
}
