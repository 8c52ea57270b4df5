package webutil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"algo_review_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", model.NewAppError("NOT_FOUND", "x", "", model.ErrNotFound), http.StatusNotFound},
		{"invalid", fmt.Errorf("wrap: %w", model.ErrInvalidInput), http.StatusBadRequest},
		{"conflict", model.NewAppError("CONFLICT", "x", "", model.ErrConflict), http.StatusConflict},
		{"unauthorized", model.NewAppError("UNAUTHORIZED", "x", "", model.ErrUnauthorized), http.StatusUnauthorized},
		{"forbidden", model.ErrForbidden, http.StatusForbidden},
		{"unavailable", model.NewAppError("SERVICE_UNAVAILABLE", "x", "", model.ErrUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleError(rr, nil, model.NewAppError("CONFLICT", "競合", "difficulty", model.ErrConflict))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error":{"code":"CONFLICT","message":"競合","field":"difficulty"}}`, rr.Body.String())

	rr = httptest.NewRecorder()
	HandleError(rr, nil, errors.New("db password leaked"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestDecodeJSONBody(t *testing.T) {
	var req model.SubmitReviewRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"difficulty":4}`))
	require.NoError(t, DecodeJSONBody(r, &req))
	assert.Equal(t, 4, req.Difficulty)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"rating":4}`))
	assert.ErrorIs(t, DecodeJSONBody(r, &req), model.ErrInvalidInput)

	r = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	assert.ErrorIs(t, DecodeJSONBody(r, &req), model.ErrInvalidInput)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/schedule?horizon=30", nil)
	v, err := QueryInt(r, "horizon", 14)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	v, err = QueryInt(httptest.NewRequest(http.MethodGet, "/schedule", nil), "horizon", 14)
	require.NoError(t, err)
	assert.Equal(t, 14, v)

	_, err = QueryInt(httptest.NewRequest(http.MethodGet, "/schedule?horizon=abc", nil), "horizon", 14)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(model.SubmitReviewRequest{Difficulty: 6})
	require.Error(t, err)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "difficulty", appErr.Detail.Field)
	assert.Equal(t, "難易度は5以下で指定してください。", appErr.Detail.Message)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	assert.NoError(t, ValidateStruct(model.SubmitReviewRequest{Difficulty: 3}))
}
