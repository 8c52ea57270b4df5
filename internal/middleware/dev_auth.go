package middleware

import (
	"net/http"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーのUUIDをそのままユーザーIDとしてコンテキストに設定します。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-IDヘッダーが必要です。", "", model.ErrUnauthorized))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "value", userIDStr)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-IDの形式が正しくありません。", "", model.ErrUnauthorized))
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context", "user_id", userID)
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}
