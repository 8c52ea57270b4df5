package service

import (
	"errors"
	"fmt"

	"algo_review_keep/internal/model"
	"algo_review_keep/internal/scheduler"
)

// storeError はリポジトリのエラーを AppError に変換します。
// NotFound / Conflict 以外は一時的な障害 (Unavailable) として扱う
func storeError(err error, notFoundMsg, failMsg string) error {
	var appErr *model.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, model.ErrNotFound):
		return model.NewAppError("NOT_FOUND", notFoundMsg, "", model.ErrNotFound)
	case errors.Is(err, model.ErrConflict):
		return model.NewAppError("CONFLICT", "他の操作と競合しました。再度お試しください。", "", model.ErrConflict)
	case errors.Is(err, scheduler.ErrInvalidArgument):
		return model.NewAppError("INVALID_ARGUMENT", "評価値が不正です。", "difficulty", fmt.Errorf("%w: %w", model.ErrInvalidInput, err))
	default:
		return model.NewAppError("SERVICE_UNAVAILABLE", failMsg, "", fmt.Errorf("%w: %w", model.ErrUnavailable, err))
	}
}
