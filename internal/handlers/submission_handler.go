// internal/handlers/submission_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/service"
	"algo_review_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	service service.SubmissionService
	logger  *slog.Logger
}

func NewSubmissionHandler(s service.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmissionHandler{service: s, logger: logger}
}

// PostSubmission は解いた問題を記録し、初回の復習スケジュールを作成します
func (h *SubmissionHandler) PostSubmission(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSubmission"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateSubmissionRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	sub, err := h.service.CreateSubmission(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating submission in service", slog.Any("error", err), slog.Int("problem_id", req.ProblemID))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Submission created successfully", slog.String("submission_id", sub.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, sub, logger)
}

// GetSubmissions はユーザーの解答記録を新しい順に返します
func (h *SubmissionHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSubmissions"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	subs, err := h.service.ListSubmissions(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing submissions in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if subs == nil {
		subs = []*model.Submission{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, subs, logger)
}

func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteSubmission"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}
	submissionID, ok := submissionIDParam(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("submission_id", submissionID.String()))

	if err := h.service.DeleteSubmission(r.Context(), userID, submissionID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Submission not found for delete")
		} else {
			logger.Error("Error deleting submission in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Submission deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// requireUserID はコンテキストからユーザーIDを取り出し、無ければエラーレスポンスを書きます
func requireUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return uuid.Nil, false
	}
	return userID, true
}

func submissionIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "submission_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid submission ID format in URL", slog.String("submission_id", raw))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", "submission_idの形式が正しくありません。", "submission_id", model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate はボディをデコードして検証します。失敗時はエラーレスポンスを書きます
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return false
	}
	if err := webutil.ValidateStruct(dst); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return false
	}
	return true
}
