package middleware

import (
	"crypto/subtle"
	"net/http"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/webutil"
)

// CronAuthMiddleware はリマインダー送信ジョブの呼び出し元を cron.secret の Bearer トークンで検証します。
// enforce が false (開発環境) の場合は検証しません。
func CronAuthMiddleware(secret string, enforce bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enforce {
				next.ServeHTTP(w, r)
				return
			}
			logger := GetLogger(r.Context())

			token, appErr := bearerToken(r)
			if appErr == nil && (secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1) {
				appErr = model.NewAppError("UNAUTHORIZED", "cronトークンが正しくありません。", "", model.ErrUnauthorized)
			}
			if appErr != nil {
				logger.Warn("Cron auth failed", "reason", appErr.Detail.Message)
				webutil.HandleError(w, logger, appErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
