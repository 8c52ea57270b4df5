// internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"algo_review_keep/internal/scheduler"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePresenting
	PhaseRated
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseRated:
		return "rated"
	case PhaseEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var (
	// ErrInvalidState は現在のフェーズで許可されない操作
	ErrInvalidState = errors.New("session: operation not allowed in current phase")
	// ErrRefreshFailed は評価の保存後、期日一覧の再取得だけが失敗した場合
	ErrRefreshFailed = errors.New("session: refresh due items failed")
)

// Review はユーザーの評価入力
type Review struct {
	Rating    scheduler.Rating
	TimeSpent int // 分
	Notes     string
}

// Outcome は評価1回の結果
type Outcome struct {
	ItemID uuid.UUID
	Rating scheduler.Rating
	Result scheduler.Result
	State  scheduler.State
}

// Session は1ユーザーの復習セッションです。単一ゴルーチンからの利用を前提とします。
type Session struct {
	id     string
	userID uuid.UUID
	store  Store
	clock  func() time.Time
	logger *slog.Logger

	queue     []Item
	phase     Phase
	revealed  bool
	completed int
	last      *Outcome
}

type Option func(*Session)

func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func New(userID uuid.UUID, store Store, opts ...Option) (*Session, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("session.New: %w", err)
	}
	s := &Session{
		id:     id,
		userID: userID,
		store:  store,
		clock:  time.Now,
		logger: slog.Default(),
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", id, "user_id", userID.String())
	return s, nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) Phase() Phase   { return s.phase }
func (s *Session) Completed() int { return s.completed }
func (s *Session) Remaining() int { return len(s.queue) }
func (s *Session) Revealed() bool { return s.revealed }

// Last は直前の評価結果。まだ評価していなければ nil
func (s *Session) Last() *Outcome { return s.last }

// Start は期日の来た問題を読み込みます。
func (s *Session) Start(ctx context.Context) error {
	s.completed = 0
	s.last = nil
	return s.refresh(ctx)
}

// Current は提示中の問題を返します。解答とメモは Reveal するまで空。
func (s *Session) Current() (Item, bool) {
	if s.phase != PhasePresenting || len(s.queue) == 0 {
		return Item{}, false
	}
	it := s.queue[0]
	if !s.revealed {
		it.Solution = ""
		it.Notes = ""
	}
	return it, true
}

// Reveal は提示中の問題の解答とメモを表示可能にします。
func (s *Session) Reveal() (Item, error) {
	if s.phase != PhasePresenting {
		return Item{}, fmt.Errorf("%w: reveal in %s", ErrInvalidState, s.phase)
	}
	s.revealed = true
	return s.queue[0], nil
}

// Rate は提示中の問題を rating で評価します。
func (s *Session) Rate(ctx context.Context, rating scheduler.Rating) (Outcome, error) {
	return s.Record(ctx, Review{Rating: rating})
}

// Record は評価を保存して次の問題へ進みます。
// 保存に失敗した場合は同じ問題のまま。保存後の再取得だけが失敗した場合は
// Outcome と ErrRefreshFailed を返し、フェーズは Rated に留まります。
func (s *Session) Record(ctx context.Context, in Review) (Outcome, error) {
	if s.phase != PhasePresenting {
		return Outcome{}, fmt.Errorf("%w: rate in %s", ErrInvalidState, s.phase)
	}
	if !in.Rating.IsValid() {
		return Outcome{}, fmt.Errorf("%w: rating %d", scheduler.ErrInvalidArgument, int(in.Rating))
	}

	current := s.queue[0]
	now := s.clock()
	logger := s.logger.With("item_id", current.ID.String(), "rating", int(in.Rating))

	prior, version, err := s.store.LoadScheduleState(ctx, s.userID, current.ID)
	if err != nil {
		logger.Warn("Failed to load schedule state", "error", err)
		return Outcome{}, err
	}

	res, err := scheduler.ComputeNextSchedule(prior, in.Rating, now)
	if err != nil {
		return Outcome{}, err
	}
	next := prior.Advance(res, now)

	change := Change{
		ItemID:          current.ID,
		ExpectedVersion: version,
		Prior:           prior,
		Next:            next,
		Rating:          in.Rating,
		ReviewedAt:      now,
		TimeSpent:       in.TimeSpent,
		Notes:           in.Notes,
	}
	if err := s.store.SaveScheduleState(ctx, s.userID, change); err != nil {
		logger.Warn("Failed to save schedule state", "error", err)
		return Outcome{}, err
	}

	out := Outcome{ItemID: current.ID, Rating: in.Rating, Result: res, State: next}
	s.completed++
	s.last = &out
	s.queue = s.queue[1:]
	s.revealed = false
	s.phase = PhaseRated
	logger.Info("Item rated", "interval", res.Interval, "next_review_date", res.NextReviewDate, "completed", s.completed)

	if len(s.queue) > 0 {
		s.phase = PhasePresenting
		return out, nil
	}
	if err := s.refresh(ctx); err != nil {
		return out, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return out, nil
}

// Skip は提示中の問題を後回しにします。状態は変更せず、完了数にも数えません。
func (s *Session) Skip() error {
	if s.phase != PhasePresenting {
		return fmt.Errorf("%w: skip in %s", ErrInvalidState, s.phase)
	}
	head := s.queue[0]
	s.queue = append(s.queue[1:], head)
	s.revealed = false
	s.logger.Debug("Item skipped", "item_id", head.ID.String())
	return nil
}

// Next はキューが空のとき期日一覧を再取得します (Rated / Empty から復帰用)。
func (s *Session) Next(ctx context.Context) error {
	switch s.phase {
	case PhasePresenting:
		return nil
	case PhaseIdle:
		return fmt.Errorf("%w: next before start", ErrInvalidState)
	}
	if len(s.queue) > 0 {
		s.phase = PhasePresenting
		return nil
	}
	return s.refresh(ctx)
}

func (s *Session) refresh(ctx context.Context) error {
	items, err := s.store.ListDueItems(ctx, s.userID, s.clock())
	if err != nil {
		s.logger.Error("Failed to list due items", "error", err)
		return err
	}
	s.queue = items
	s.revealed = false
	if len(items) == 0 {
		s.phase = PhaseEmpty
		s.logger.Info("No items due", "completed", s.completed)
		return nil
	}
	s.phase = PhasePresenting
	s.logger.Info("Due items loaded", "count", len(items))
	return nil
}
