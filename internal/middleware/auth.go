package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"algo_review_keep/internal/config"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// bearerToken は "Bearer {token}" 形式のヘッダーからトークンを取り出します
func bearerToken(r *http.Request) (string, *model.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーが必要です。", "", model.ErrUnauthorized)
	}
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" || headerParts[1] == "" {
		return "", model.NewAppError("UNAUTHORIZED", "Authorizationヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
	}
	return headerParts[1], nil
}

// JWTAuthMiddleware は Bearer トークンを検証し、sub クレームのユーザーIDをコンテキストに設定します
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString, appErr := bearerToken(r)
			if appErr != nil {
				logger.Warn("JWT auth failed", "reason", appErr.Detail.Message)
				webutil.HandleError(w, logger, appErr)
				return
			}

			// 署名と有効期限(exp)を検証する
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "トークンが無効です。", "", model.ErrUnauthorized))
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				logger.Warn("JWT auth failed: Subject (sub) claim missing", "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "トークンにユーザー情報が含まれていません。", "", model.ErrUnauthorized))
				return
			}
			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", subject, "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "トークンのユーザー情報が不正です。", "", model.ErrUnauthorized))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID はユーザーIDをコンテキストに設定し、以降のログに user_id を付けます
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = withLogger(ctx, GetLogger(ctx).With("user_id", userID.String()))
	return context.WithValue(ctx, model.UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || value == uuid.Nil {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized)
	}
	return value, nil
}
