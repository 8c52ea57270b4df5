// internal/session/store.go
//go:generate mockery --name Store --output ./mocks --outpkg mocks --case=underscore
package session

import (
	"context"
	"time"

	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
)

// Item は復習セッションで提示する1問です。
type Item struct {
	ID         uuid.UUID
	ProblemID  int
	Title      string
	TitleSlug  string
	Difficulty int
	Language   string
	Solution   string
	Notes      string
	SolvedAt   time.Time
	Schedule   scheduler.State
	Version    int
}

func (i Item) NextReviewAt() *time.Time { return i.Schedule.NextReviewDate }
func (i Item) SolvedOn() time.Time      { return i.SolvedAt }

// Change は評価1回分の永続化内容です。
// ExpectedVersion が保存済みのバージョンと一致しない場合、Store は Conflict を返します。
type Change struct {
	ItemID          uuid.UUID
	ExpectedVersion int
	Prior           scheduler.State
	Next            scheduler.State
	Rating          scheduler.Rating
	ReviewedAt      time.Time
	TimeSpent       int
	Notes           string
}

// Store はセッションが利用する永続化層です。
type Store interface {
	// ListDueItems は now 時点で期日の来た問題を優先順で返します。
	ListDueItems(ctx context.Context, userID uuid.UUID, now time.Time) ([]Item, error)
	// LoadScheduleState は現在のスケジュール状態とバージョンを返します。存在しなければ NotFound。
	LoadScheduleState(ctx context.Context, userID, itemID uuid.UUID) (scheduler.State, int, error)
	SaveScheduleState(ctx context.Context, userID uuid.UUID, change Change) error
}
