package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// Handlers はルーターに登録するハンドラの集合
type Handlers struct {
	Submissions *SubmissionHandler
	Reviews     *ReviewHandler
	Problems    *ProblemHandler
	Cron        *CronHandler
}

// NewRouter はミドルウェアと /api/v1 以下のルートを組み立てます。
// devMode では X-User-ID ヘッダー認証を使い、cron の Bearer 検証を行いません。
func NewRouter(cfg *config.Config, logger *slog.Logger, db *gorm.DB, h Handlers, devMode bool) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.CronAuthMiddleware(cfg.Cron.Secret, !devMode))
			r.Get("/cron/send-reminders", h.Cron.SendReminders)
			r.Post("/cron/send-reminders", h.Cron.SendReminders)
		})

		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				logger.Info("Applying JWT authentication middleware")
				r.Use(middleware.JWTAuthMiddleware(cfg))
			} else {
				logger.Warn("Authentication disabled, using X-User-ID header")
				r.Use(middleware.DevUserContextMiddleware)
			}

			r.Route("/submissions", func(r chi.Router) {
				r.Post("/", h.Submissions.PostSubmission)
				r.Get("/", h.Submissions.GetSubmissions)
				r.Delete("/{submission_id}", h.Submissions.DeleteSubmission)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/due", h.Reviews.GetDueReviews)
				r.Get("/stats", h.Reviews.GetStats)
				r.Post("/{submission_id}", h.Reviews.SubmitReview)
			})

			r.Get("/schedule", h.Reviews.GetSchedule)

			r.Route("/problems", func(r chi.Router) {
				r.Get("/search", h.Problems.SearchProblems)
				r.Get("/suggested", h.Problems.GetSuggestedProblems)
			})
		})
	})

	r.Get("/health", healthCheck(db))
	return r
}

// healthCheck はDBへの疎通を確認します
func healthCheck(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.GetLogger(r.Context())
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		if err := sqlDB.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
