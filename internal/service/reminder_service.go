//go:generate mockery --name ReminderService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/selector"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	reminderStatusSkipped = "skipped"
	notesPreviewLength    = 100
)

type ReminderService interface {
	// SendDueReminders は通知を有効にしている全ユーザーに、期日の来た問題の一覧を送信します
	SendDueReminders(ctx context.Context) (*model.ReminderSummary, error)
	// SendWeeklySummary は直近7日間の記録を送信します。送信しなかった場合は false
	SendWeeklySummary(ctx context.Context, userID uuid.UUID) (bool, error)
}

type reminderService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	subRepo    repository.SubmissionRepository
	reviewRepo repository.ReviewRepository
	emailRepo  repository.EmailLogRepository
	mailer     Mailer
	policy     selector.Policy
	clock      func() time.Time
}

func NewReminderService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	subRepo repository.SubmissionRepository,
	reviewRepo repository.ReviewRepository,
	emailRepo repository.EmailLogRepository,
	mailer Mailer,
	policy selector.Policy,
) ReminderService {
	return &reminderService{
		db:         db,
		userRepo:   userRepo,
		subRepo:    subRepo,
		reviewRepo: reviewRepo,
		emailRepo:  emailRepo,
		mailer:     mailer,
		policy:     policy,
		clock:      time.Now,
	}
}

var reminderTemplate = template.Must(template.New("reminder").Funcs(template.FuncMap{
	"difficulty": model.DifficultyLabel,
	"preview":    preview,
}).Parse(`Hi {{.Name}}!

You have {{len .Problems}} problem{{if gt (len .Problems) 1}}s{{end}} ready for review:
{{range .Problems}}
  {{.ProblemID}}. {{.Title}} [{{difficulty .Difficulty}}]
     Last reviewed: {{.LastReviewed}}
     Review count: {{.ReviewCount}} times
{{- if .Notes}}
     Your notes: {{preview .Notes}}
{{- end}}
{{end}}
Tip: Try to solve each problem without looking at your previous solution first!
`))

var weeklyTemplate = template.Must(template.New("weekly").Parse(`Great work this week, {{.Name}}!

  Problems solved:   {{.Solved}}
  Minutes spent:     {{.Minutes}}
  Reviews completed: {{.Reviews}}

Keep up the great work! Consistency is key to mastering algorithms.
`))

type reminderProblem struct {
	ProblemID    int
	Title        string
	Difficulty   int
	LastReviewed string
	ReviewCount  int
	Notes        string
}

func (s *reminderService) SendDueReminders(ctx context.Context) (*model.ReminderSummary, error) {
	logger := middleware.GetLogger(ctx)
	now := s.clock()

	users, err := s.userRepo.FindNotificationEnabled(ctx, s.db)
	if err != nil {
		logger.Error("Failed to find users for reminders", "error", err)
		return nil, storeError(err, "", "通知対象ユーザーの取得に失敗しました。")
	}
	logger.Info("Starting email reminder job", "candidates", len(users))

	summary := &model.ReminderSummary{Timestamp: now, Results: []model.ReminderResult{}}
	for _, user := range users {
		userLogger := logger.With("user_id", user.ID)

		due, err := findDue(ctx, s.subRepo, s.db, s.policy, user.ID, now)
		if err != nil {
			// 1人の失敗で全体を止めない
			userLogger.Error("Failed to find due submissions for user", "error", err)
			summary.UsersProcessed++
			summary.EmailsFailed++
			summary.Results = append(summary.Results, model.ReminderResult{UserID: user.ID, Email: user.Email, Status: model.EmailStatusFailed})
			continue
		}
		if len(due) == 0 {
			continue
		}
		summary.UsersProcessed++

		result := model.ReminderResult{UserID: user.ID, Email: user.Email, Problems: len(due)}
		sent, err := s.emailRepo.SentSince(ctx, s.db, user.ID, model.EmailTypeReviewReminder, s.policy.StartOfDay(now))
		if err != nil {
			userLogger.Warn("Failed to check email log, sending anyway", "error", err)
		}
		if sent {
			userLogger.Info("Reminder already sent today, skipping")
			result.Status = reminderStatusSkipped
			summary.Results = append(summary.Results, result)
			continue
		}

		if err := s.sendReminder(ctx, user, due); err != nil {
			userLogger.Error("Failed to send reminder", "error", err)
			result.Status = model.EmailStatusFailed
			summary.EmailsFailed++
		} else {
			result.Status = model.EmailStatusSent
			summary.EmailsSent++
		}
		summary.Results = append(summary.Results, result)
	}

	logger.Info("Email reminder job finished",
		"users_processed", summary.UsersProcessed,
		"emails_sent", summary.EmailsSent,
		"emails_failed", summary.EmailsFailed,
	)
	return summary, nil
}

func (s *reminderService) sendReminder(ctx context.Context, user *model.User, due []*model.Submission) error {
	loc := userLocation(user)
	problems := make([]reminderProblem, len(due))
	for i, sub := range due {
		p := reminderProblem{
			ProblemID:    sub.ProblemID,
			Title:        sub.Title(),
			LastReviewed: "Never",
			ReviewCount:  sub.ReviewCount,
			Notes:        sub.Notes,
		}
		if sub.Problem != nil {
			p.Difficulty = sub.Problem.Difficulty
		}
		if sub.LastReviewedAt != nil {
			p.LastReviewed = sub.LastReviewedAt.In(loc).Format("2006-01-02")
		}
		problems[i] = p
	}

	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, map[string]any{
		"Name":     displayName(user),
		"Problems": problems,
	}); err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	subject := fmt.Sprintf("%d problem%s to review", len(due), plural(len(due)))
	sendErr := s.mailer.Send(ctx, user.Email, subject, body.String())
	s.logEmail(ctx, user.ID, model.EmailTypeReviewReminder, len(due), sendErr)
	return sendErr
}

func (s *reminderService) SendWeeklySummary(ctx context.Context, userID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		return false, storeError(err, "ユーザーが見つかりません。", "ユーザーの取得に失敗しました。")
	}
	if !user.EmailNotifications {
		logger.Info("Email notifications disabled, skipping weekly summary")
		return false, nil
	}

	since := s.clock().AddDate(0, 0, -7)
	solved, minutes, err := s.subRepo.SumSolvedSince(ctx, s.db, userID, since)
	if err != nil {
		return false, storeError(err, "", "週間サマリーの集計に失敗しました。")
	}
	if solved == 0 {
		logger.Info("Nothing solved this week, skipping weekly summary")
		return false, nil
	}
	reviews, err := s.reviewRepo.CountSince(ctx, s.db, userID, since)
	if err != nil {
		return false, storeError(err, "", "週間サマリーの集計に失敗しました。")
	}

	var body bytes.Buffer
	if err := weeklyTemplate.Execute(&body, map[string]any{
		"Name":    displayName(user),
		"Solved":  solved,
		"Minutes": minutes,
		"Reviews": reviews,
	}); err != nil {
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "メール本文の生成に失敗しました。", "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
	}

	subject := fmt.Sprintf("Your weekly summary - %d problem%s solved!", solved, plural(int(solved)))
	sendErr := s.mailer.Send(ctx, user.Email, subject, body.String())
	s.logEmail(ctx, userID, model.EmailTypeWeeklySummary, int(solved), sendErr)
	if sendErr != nil {
		logger.Error("Failed to send weekly summary", "error", sendErr)
		return false, model.NewAppError("SERVICE_UNAVAILABLE", "メールの送信に失敗しました。", "", fmt.Errorf("%w: %w", model.ErrUnavailable, sendErr))
	}
	return true, nil
}

// logEmail は送信結果を記録します。記録自体の失敗は送信結果に影響させない
func (s *reminderService) logEmail(ctx context.Context, userID uuid.UUID, emailType string, count int, sendErr error) {
	entry := &model.EmailLog{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         emailType,
		Status:       model.EmailStatusSent,
		ProblemCount: count,
		CreatedAt:    s.clock(),
	}
	if sendErr != nil {
		entry.Status = model.EmailStatusFailed
		entry.Error = sendErr.Error()
	}
	if err := s.emailRepo.Create(ctx, s.db, entry); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to record email log", "error", err, "user_id", userID)
	}
}

func userLocation(user *model.User) *time.Location {
	if user.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func displayName(user *model.User) string {
	if strings.TrimSpace(user.Name) == "" {
		return "there"
	}
	return user.Name
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= notesPreviewLength {
		return s
	}
	return string(r[:notesPreviewLength]) + "..."
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
