package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"algo_review_keep/internal/handlers"
	"algo_review_keep/internal/model"
	svc_mocks "algo_review_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmissionHandler_PostSubmission(t *testing.T) {
	userID := uuid.New()
	validReq := map[string]interface{}{
		"problem_id": 1,
		"title":      "Two Sum",
		"title_slug": "two-sum",
		"difficulty": 1,
		"notes":      "hash map",
	}

	tests := []struct {
		name       string
		userID     uuid.UUID
		body       interface{}
		setupMock  func(m *svc_mocks.SubmissionService)
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:   "正常系: 作成",
			userID: userID,
			body:   validReq,
			setupMock: func(m *svc_mocks.SubmissionService) {
				m.On("CreateSubmission", mock.Anything, userID, mock.MatchedBy(func(req *model.CreateSubmissionRequest) bool {
					return req.ProblemID == 1 && req.TitleSlug == "two-sum" && req.Notes == "hash map"
				})).Return(&model.Submission{ID: uuid.New(), ProblemID: 1, Interval: 1}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "異常系: 認証なし",
			body:       validReq,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "異常系: JSON不正",
			userID:     userID,
			body:       `{"problem_id":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "異常系: 未知のフィールド",
			userID:     userID,
			body:       `{"problem_id":1,"title":"a","title_slug":"a","difficulty":1,"rating":3}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:       "異常系: 難易度が範囲外",
			userID:     userID,
			body:       map[string]interface{}{"problem_id": 1, "title": "a", "title_slug": "a", "difficulty": 4},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "difficulty",
		},
		{
			name:       "異常系: タイトルなし",
			userID:     userID,
			body:       map[string]interface{}{"problem_id": 1, "title_slug": "a", "difficulty": 1},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "title",
		},
		{
			name:   "異常系: 未来の解答日時",
			userID: userID,
			body:   validReq,
			setupMock: func(m *svc_mocks.SubmissionService) {
				m.On("CreateSubmission", mock.Anything, userID, mock.Anything).
					Return(nil, model.NewAppError("VALIDATION_ERROR", "未来の日時は指定できません。", "solved_at", model.ErrInvalidInput)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantField:  "solved_at",
		},
		{
			name:   "異常系: DB停止",
			userID: userID,
			body:   validReq,
			setupMock: func(m *svc_mocks.SubmissionService) {
				m.On("CreateSubmission", mock.Anything, userID, mock.Anything).
					Return(nil, model.NewAppError("SERVICE_UNAVAILABLE", "保存に失敗しました。", "", model.ErrUnavailable)).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := svc_mocks.NewSubmissionService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			h := handlers.NewSubmissionHandler(m, testLogger)

			req := withUser(newJSONRequest(t, http.MethodPost, "/api/v1/submissions", tt.body), tt.userID, nil)
			rr := httptest.NewRecorder()
			h.PostSubmission(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				detail := decodeError(t, rr.Body.Bytes())
				assert.Equal(t, tt.wantCode, detail.Code)
				assert.Equal(t, tt.wantField, detail.Field)
			}
		})
	}
}

func TestSubmissionHandler_GetSubmissions(t *testing.T) {
	userID := uuid.New()
	solved := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: 一覧", func(t *testing.T) {
		m := svc_mocks.NewSubmissionService(t)
		m.On("ListSubmissions", mock.Anything, userID).Return([]*model.Submission{
			{ID: uuid.New(), ProblemID: 1, SolvedAt: solved, Problem: &model.Problem{ID: 1, Title: "Two Sum"}},
		}, nil).Once()

		rr := httptest.NewRecorder()
		handlers.NewSubmissionHandler(m, testLogger).GetSubmissions(rr, withUser(newJSONRequest(t, http.MethodGet, "/api/v1/submissions", nil), userID, nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Two Sum", got[0]["problem"].(map[string]interface{})["title"])
		assert.NotContains(t, got[0], "user_id")
	})

	t.Run("正常系: nil は空配列", func(t *testing.T) {
		m := svc_mocks.NewSubmissionService(t)
		m.On("ListSubmissions", mock.Anything, userID).Return(nil, nil).Once()

		rr := httptest.NewRecorder()
		handlers.NewSubmissionHandler(m, testLogger).GetSubmissions(rr, withUser(newJSONRequest(t, http.MethodGet, "/api/v1/submissions", nil), userID, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("異常系: サービスエラー", func(t *testing.T) {
		m := svc_mocks.NewSubmissionService(t)
		m.On("ListSubmissions", mock.Anything, userID).Return(nil, errors.New("boom")).Once()

		rr := httptest.NewRecorder()
		handlers.NewSubmissionHandler(m, testLogger).GetSubmissions(rr, withUser(newJSONRequest(t, http.MethodGet, "/api/v1/submissions", nil), userID, nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", decodeError(t, rr.Body.Bytes()).Code)
	})
}

func TestSubmissionHandler_DeleteSubmission(t *testing.T) {
	userID := uuid.New()
	subID := uuid.New()

	tests := []struct {
		name       string
		param      string
		setupMock  func(m *svc_mocks.SubmissionService)
		wantStatus int
	}{
		{
			name:  "正常系: 削除",
			param: subID.String(),
			setupMock: func(m *svc_mocks.SubmissionService) {
				m.On("DeleteSubmission", mock.Anything, userID, subID).Return(nil).Once()
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:  "異常系: 見つからない",
			param: subID.String(),
			setupMock: func(m *svc_mocks.SubmissionService) {
				m.On("DeleteSubmission", mock.Anything, userID, subID).
					Return(model.NewAppError("NOT_FOUND", "解答記録が見つかりません。", "", model.ErrNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "異常系: ID形式不正",
			param:      "abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := svc_mocks.NewSubmissionService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}
			req := withUser(newJSONRequest(t, http.MethodDelete, "/api/v1/submissions/"+tt.param, nil), userID, map[string]string{"submission_id": tt.param})
			rr := httptest.NewRecorder()
			handlers.NewSubmissionHandler(m, testLogger).DeleteSubmission(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
