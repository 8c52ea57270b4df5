// internal/handlers/review_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/service"
	"algo_review_keep/internal/webutil"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{service: s, logger: logger}
}

// GetDueReviews は復習期限の来た解答を優先順に返します
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDueReviews"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	items, err := h.service.GetDueReviews(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting due reviews in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if items == nil {
		items = []*model.DueItemResponse{}
	}
	logger.Info("Due reviews retrieved", slog.Int("count", len(items)))
	webutil.RespondWithJSON(w, http.StatusOK, items, logger)
}

// SubmitReview は復習結果の評価を記録し、次回の復習日を返します
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitReview"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	submissionID, ok := submissionIDParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("submission_id", submissionID.String()))

	var req model.SubmitReviewRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	resp, err := h.service.SubmitReview(r.Context(), userID, submissionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			logger.Info("Submission not found for review")
		case errors.Is(err, model.ErrConflict):
			logger.Warn("Concurrent review detected", slog.Any("error", err))
		default:
			logger.Error("Error submitting review in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Review submitted", slog.Int("difficulty", req.Difficulty), slog.Int("interval", resp.NextReview.Interval))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	summary, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting review stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetSchedule は予定を overdue/today/week/later に分類し、日別の負荷を返します
func (h *ReviewHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSchedule"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	// 未指定 (0) なら設定の load_horizon_days を使う
	horizon, err := webutil.QueryInt(r, "horizon", 0)
	if err != nil {
		logger.Warn("Invalid horizon query", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), userID, horizon)
	if err != nil {
		logger.Error("Error getting schedule in service", slog.Any("error", err), slog.Int("horizon", horizon))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, schedule, logger)
}
