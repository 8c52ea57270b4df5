package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"algo_review_keep/internal/catalog"
	"algo_review_keep/internal/config"
	"algo_review_keep/internal/handlers"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"
	"algo_review_keep/internal/selector"
	"algo_review_keep/internal/service"
	svc_mocks "algo_review_keep/internal/service/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupServer は SQLite 上の実サービスでルーター全体を組み立てます
func setupServer(t *testing.T, cfg *config.Config, mailer service.Mailer, devMode bool) (*httptest.Server, *gorm.DB) {
	t.Helper()
	db, err := repository.NewDB(repository.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", testLogger)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	subRepo := repository.NewGormSubmissionRepository()
	probRepo := repository.NewGormProblemRepository()
	reviewRepo := repository.NewGormReviewRepository()
	policy := selector.DefaultPolicy()

	subSvc := service.NewSubmissionService(db, subRepo, probRepo, reviewRepo)
	reviewSvc := service.NewReviewService(db, subRepo, reviewRepo, cfg, policy)
	reminderSvc := service.NewReminderService(db, repository.NewGormUserRepository(), subRepo, reviewRepo, repository.NewGormEmailLogRepository(), mailer, policy)

	h := handlers.Handlers{
		Submissions: handlers.NewSubmissionHandler(subSvc, testLogger),
		Reviews:     handlers.NewReviewHandler(reviewSvc, testLogger),
		Problems:    handlers.NewProblemHandler(catalog.NewGormCatalog(db, probRepo), subSvc, testLogger),
		Cron:        handlers.NewCronHandler(reminderSvc, testLogger),
	}
	server := httptest.NewServer(handlers.NewRouter(cfg, testLogger, db, h, devMode))
	t.Cleanup(func() {
		server.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return server, db
}

func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}, headers map[string]string) (int, []byte) {
	t.Helper()
	req := newJSONRequest(t, method, server.URL+path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf
}

func testRouterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.ReviewLimit = 20
	cfg.App.RecentReviews = 5
	cfg.Cron.Secret = "cron-secret"
	return cfg
}

func TestRouter_ReviewFlow(t *testing.T) {
	server, _ := setupServer(t, testRouterConfig(), &service.LogMailer{}, true)
	user := map[string]string{"X-User-ID": uuid.NewString()}

	// 認証ヘッダーなしは拒否
	status, _ := doJSON(t, server, http.MethodGet, "/api/v1/submissions", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	solvedAt := time.Now().UTC().Truncate(time.Second).AddDate(0, 0, -3)
	status, body := doJSON(t, server, http.MethodPost, "/api/v1/submissions", map[string]interface{}{
		"problem_id": 1,
		"title":      "Two Sum",
		"title_slug": "two-sum",
		"difficulty": 1,
		"solved_at":  solvedAt,
		"language":   "go",
	}, user)
	require.Equal(t, http.StatusCreated, status, string(body))
	var sub model.Submission
	require.NoError(t, json.Unmarshal(body, &sub))
	assert.Equal(t, 1, sub.Interval)

	status, body = doJSON(t, server, http.MethodGet, "/api/v1/reviews/due", nil, user)
	require.Equal(t, http.StatusOK, status)
	var due []model.DueItemResponse
	require.NoError(t, json.Unmarshal(body, &due))
	require.Len(t, due, 1)
	assert.Equal(t, sub.ID, due[0].Submission.ID)

	status, body = doJSON(t, server, http.MethodPost, "/api/v1/reviews/"+sub.ID.String(), map[string]int{"difficulty": 4}, user)
	require.Equal(t, http.StatusOK, status, string(body))
	var result model.SubmitReviewResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 6, result.NextReview.Interval)
	assert.Equal(t, 6, result.NextReview.DaysUntil)

	status, body = doJSON(t, server, http.MethodGet, "/api/v1/reviews/due", nil, user)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = doJSON(t, server, http.MethodGet, "/api/v1/schedule?horizon=14", nil, user)
	require.Equal(t, http.StatusOK, status)
	var schedule map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &schedule))
	assert.JSONEq(t, `1`, string(schedule["total"]))

	status, body = doJSON(t, server, http.MethodGet, "/api/v1/reviews/stats", nil, user)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"total_reviews":1`)

	// 解答済みの Two Sum はおすすめから外れる
	status, body = doJSON(t, server, http.MethodGet, "/api/v1/problems/suggested", nil, user)
	require.Equal(t, http.StatusOK, status)
	var suggested []model.Problem
	require.NoError(t, json.Unmarshal(body, &suggested))
	assert.Len(t, suggested, 17)

	status, body = doJSON(t, server, http.MethodGet, "/api/v1/problems/search?q=two", nil, user)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"two-sum"`)

	// 他のユーザーからは見えない
	other := map[string]string{"X-User-ID": uuid.NewString()}
	status, _ = doJSON(t, server, http.MethodPost, "/api/v1/reviews/"+sub.ID.String(), map[string]int{"difficulty": 4}, other)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, server, http.MethodDelete, "/api/v1/submissions/"+sub.ID.String(), nil, user)
	assert.Equal(t, http.StatusNoContent, status)
	status, body = doJSON(t, server, http.MethodGet, "/api/v1/submissions", nil, user)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestRouter_Health(t *testing.T) {
	server, _ := setupServer(t, testRouterConfig(), &service.LogMailer{}, true)
	resp, err := server.Client().Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CronAuth(t *testing.T) {
	mailer := svc_mocks.NewMailer(t)
	server, db := setupServer(t, testRouterConfig(), mailer, false)

	user := &model.User{ID: uuid.New(), Email: "cron@example.com", Name: "Cron", EmailNotifications: true, ReviewHour: 9, Timezone: "UTC"}
	require.NoError(t, db.Create(user).Error)
	_, err := service.NewSubmissionService(db, repository.NewGormSubmissionRepository(), repository.NewGormProblemRepository(), repository.NewGormReviewRepository()).
		CreateSubmission(context.Background(), user.ID, &model.CreateSubmissionRequest{
			ProblemID: 20, Title: "Valid Parentheses", TitleSlug: "valid-parentheses", Difficulty: 1,
			SolvedAt: ptrTime(time.Now().UTC().Truncate(time.Second).AddDate(0, 0, -3)),
		})
	require.NoError(t, err)

	status, _ := doJSON(t, server, http.MethodPost, "/api/v1/cron/send-reminders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, server, http.MethodPost, "/api/v1/cron/send-reminders", nil, map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	mailer.On("Send", mock.Anything, "cron@example.com", "1 problem to review", mock.AnythingOfType("string")).Return(nil).Once()
	status, body := doJSON(t, server, http.MethodGet, "/api/v1/cron/send-reminders", nil, map[string]string{"Authorization": "Bearer cron-secret"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"emails_sent":1`)
}

func TestRouter_JWTAuth(t *testing.T) {
	cfg := testRouterConfig()
	cfg.Auth.Enabled = true
	cfg.JWT.SecretKey = "jwt-secret"
	server, _ := setupServer(t, cfg, &service.LogMailer{}, false)

	// X-User-ID は JWT 有効時には使えない
	status, _ := doJSON(t, server, http.MethodGet, "/api/v1/submissions", nil, map[string]string{"X-User-ID": uuid.NewString()})
	assert.Equal(t, http.StatusUnauthorized, status)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("jwt-secret"))
	require.NoError(t, err)

	status, body := doJSON(t, server, http.MethodGet, "/api/v1/submissions", nil, map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)})
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func ptrTime(t time.Time) *time.Time { return &t }
