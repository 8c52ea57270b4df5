package handlers

import (
	"log/slog"
	"net/http"

	"algo_review_keep/internal/service"
	"algo_review_keep/internal/webutil"
)

// CronHandler は外部スケジューラから呼ばれるジョブのエンドポイント
type CronHandler struct {
	reminders service.ReminderService
	logger    *slog.Logger
}

func NewCronHandler(s service.ReminderService, logger *slog.Logger) *CronHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CronHandler{reminders: s, logger: logger}
}

func (h *CronHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SendReminders"))

	summary, err := h.reminders.SendDueReminders(r.Context())
	if err != nil {
		logger.Error("Reminder job failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Reminder job finished",
		slog.Int("users_processed", summary.UsersProcessed),
		slog.Int("emails_sent", summary.EmailsSent),
		slog.Int("emails_failed", summary.EmailsFailed),
	)
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
