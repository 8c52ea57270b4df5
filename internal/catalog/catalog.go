//go:generate mockery --name Catalog --output ./mocks --outpkg mocks --case=underscore

// Package catalog は問題の検索とおすすめ問題の一覧を提供します。
package catalog

import (
	"context"
	"strconv"
	"strings"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"
	"algo_review_keep/internal/repository"

	"gorm.io/gorm"
)

// SearchLimit は検索結果の最大件数
const SearchLimit = 20

type Catalog interface {
	Search(ctx context.Context, query string) ([]model.Problem, error)
	Suggested(ctx context.Context) ([]model.Problem, error)
}

// staticCatalog は同梱のおすすめ問題リストだけで動くカタログ
type staticCatalog struct {
	problems []model.Problem
}

func NewStatic() Catalog {
	return &staticCatalog{problems: suggestedProblems}
}

func (c *staticCatalog) Search(ctx context.Context, query string) ([]model.Problem, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	return match(c.problems, q, SearchLimit), nil
}

func (c *staticCatalog) Suggested(ctx context.Context) ([]model.Problem, error) {
	out := make([]model.Problem, len(c.problems))
	copy(out, c.problems)
	return out, nil
}

// gormCatalog は登録済みの問題を DB から検索し、足りない分を同梱リストで補います
type gormCatalog struct {
	staticCatalog
	db   *gorm.DB
	repo repository.ProblemRepository
}

func NewGormCatalog(db *gorm.DB, repo repository.ProblemRepository) Catalog {
	return &gormCatalog{
		staticCatalog: staticCatalog{problems: suggestedProblems},
		db:            db,
		repo:          repo,
	}
}

func (c *gormCatalog) Search(ctx context.Context, query string) ([]model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	stored, err := c.repo.Search(ctx, c.db, q, SearchLimit)
	if err != nil {
		logger.Error("Failed to search stored problems", "error", err, "query", q)
		return nil, model.NewAppError("SERVICE_UNAVAILABLE", "問題の検索に失敗しました。", "", model.ErrUnavailable)
	}

	seen := make(map[int]bool, len(stored))
	for _, p := range stored {
		seen[p.ID] = true
	}
	for _, p := range match(c.problems, q, SearchLimit) {
		if len(stored) >= SearchLimit {
			break
		}
		if !seen[p.ID] {
			stored = append(stored, p)
			seen[p.ID] = true
		}
	}
	return stored, nil
}

func normalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", model.NewAppError("INVALID_ARGUMENT", "検索キーワードを入力してください。", "q", model.ErrInvalidInput)
	}
	return q, nil
}

// match は問題番号・タイトル・slug のいずれかに大文字小文字を区別せず部分一致する問題を返します
func match(problems []model.Problem, query string, limit int) []model.Problem {
	lower := strings.ToLower(query)
	out := make([]model.Problem, 0)
	for _, p := range problems {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strconv.Itoa(p.ID), lower) ||
			strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(p.TitleSlug, lower) {
			out = append(out, p)
		}
	}
	return out
}
