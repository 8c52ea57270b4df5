//go:generate mockery --name ProblemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"algo_review_keep/internal/middleware"
	"algo_review_keep/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProblemRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, problem *model.Problem) error
	FindByID(ctx context.Context, db *gorm.DB, problemID int) (*model.Problem, error)
	Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]model.Problem, error)
}

type gormProblemRepository struct{}

func NewGormProblemRepository() ProblemRepository {
	return &gormProblemRepository{}
}

// Upsert は問題番号をキーに作成または更新します
func (r *gormProblemRepository) Upsert(ctx context.Context, tx *gorm.DB, problem *model.Problem) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "title_slug", "difficulty", "updated_at"}),
	}).Create(problem)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			// 別の問題番号で同じ slug
			logger.Warn("Duplicate slug on upsert problem", "error", result.Error, "title_slug", problem.TitleSlug)
			return model.ErrConflict
		}
		logger.Error("Error upserting problem in DB", "error", result.Error, "problem_id", problem.ID)
		return fmt.Errorf("gormProblemRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormProblemRepository) FindByID(ctx context.Context, db *gorm.DB, problemID int) (*model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	var problem model.Problem
	result := db.WithContext(ctx).First(&problem, problemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding problem by ID in DB", "error", result.Error, "problem_id", problemID)
		return nil, fmt.Errorf("gormProblemRepository.FindByID: %w", result.Error)
	}
	return &problem, nil
}

// Search はタイトル・slug の部分一致、または問題番号の完全一致で検索します
func (r *gormProblemRepository) Search(ctx context.Context, db *gorm.DB, query string, limit int) ([]model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	var problems []model.Problem

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := db.WithContext(ctx).Where("LOWER(title) LIKE ? OR LOWER(title_slug) LIKE ?", pattern, pattern)
	if id, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		q = q.Or("id = ?", id)
	}
	result := q.Order("id ASC").Limit(limit).Find(&problems)
	if result.Error != nil {
		logger.Error("Error searching problems in DB", "error", result.Error, "query", query)
		return nil, fmt.Errorf("gormProblemRepository.Search: %w", result.Error)
	}
	return problems, nil
}
