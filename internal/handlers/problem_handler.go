package handlers

import (
	"log/slog"
	"net/http"

	"algo_review_keep/internal/catalog"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/service"
	"algo_review_keep/internal/webutil"
)

type ProblemHandler struct {
	catalog     catalog.Catalog
	submissions service.SubmissionService
	logger      *slog.Logger
}

func NewProblemHandler(c catalog.Catalog, submissions service.SubmissionService, logger *slog.Logger) *ProblemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProblemHandler{catalog: c, submissions: submissions, logger: logger}
}

// SearchProblems は q に問題番号・タイトル・slug が部分一致する問題を返します
func (h *ProblemHandler) SearchProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SearchProblems"))
	query := r.URL.Query().Get("q")

	problems, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		logger.Warn("Problem search failed", slog.Any("error", err), slog.String("q", query))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, problems, logger)
}

// GetSuggestedProblems はおすすめ問題のうち、ユーザーがまだ解いていないものを返します
func (h *ProblemHandler) GetSuggestedProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSuggestedProblems"))

	userID, ok := requireUserID(w, r, logger)
	if !ok {
		return
	}

	suggested, err := h.catalog.Suggested(r.Context())
	if err != nil {
		logger.Error("Error loading suggested problems", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	subs, err := h.submissions.ListSubmissions(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing submissions for suggestions", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	solved := make(map[int]bool, len(subs))
	for _, s := range subs {
		solved[s.ProblemID] = true
	}
	out := make([]model.Problem, 0, len(suggested))
	for _, p := range suggested {
		if !solved[p.ID] {
			out = append(out, p)
		}
	}
	webutil.RespondWithJSON(w, http.StatusOK, out, logger)
}
