// Package activity implements the habit, daily and task stores: validating
// completion state, computing rewards through the reward table, applying
// them to the character aggregate, and reconciling the optimistic local
// mutation against the server reward authority.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/concurrency"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
	"github.com/gevornos/Life-is-RPG/internal/reward"
)

// RewardAuthority is the network-exposed validation service that
// independently recomputes and persists rewards. A nil authority leaves the
// engine in purely local mode.
type RewardAuthority interface {
	GrantReward(ctx context.Context, grant domain.RewardGrant) (*domain.RewardResult, error)
}

// DayCloser closes out the previous day's accounting. Reward-granting
// operations call it first so a stale day can never be double-counted or
// skipped.
type DayCloser interface {
	EnsureToday(ctx context.Context, userID string) error
}

// MonsterTarget receives attribute-tagged damage from completed activities.
type MonsterTarget interface {
	ApplyActivityDamage(ctx context.Context, userID string, attrs []domain.Attribute) error
}

// Service defines the activity store business logic. Reward-bearing
// operations return applied=false (and no error) when the item does not
// exist or is already in the target completion state. They serialize per
// user, so concurrent requests cannot slip past the completion guard and
// double-grant.
type Service interface {
	ListHabits(ctx context.Context, userID string) ([]domain.Habit, error)
	AddHabit(ctx context.Context, habit *domain.Habit) error
	UpdateHabit(ctx context.Context, habit *domain.Habit) error
	DeleteHabit(ctx context.Context, userID, id string) error
	ReorderHabits(ctx context.Context, userID string, ids []string) error
	CompleteHabit(ctx context.Context, userID, id string) (bool, error)
	FailHabit(ctx context.Context, userID, id string) (bool, error)

	ListDailies(ctx context.Context, userID string) ([]domain.Daily, error)
	AddDaily(ctx context.Context, daily *domain.Daily) error
	UpdateDaily(ctx context.Context, daily *domain.Daily) error
	DeleteDaily(ctx context.Context, userID, id string) error
	ReorderDailies(ctx context.Context, userID string, ids []string) error
	CompleteDaily(ctx context.Context, userID, id string) (bool, error)
	UncompleteDaily(ctx context.Context, userID, id string) (bool, error)

	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	AddTask(ctx context.Context, task *domain.Task) error
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, userID, id string) error
	ReorderTasks(ctx context.Context, userID string, ids []string) error
	CompleteTask(ctx context.Context, userID, id string) (bool, error)
	UncompleteTask(ctx context.Context, userID, id string) (bool, error)
}

type service struct {
	repo      repository.Activity
	charSvc   character.Service
	table     *reward.Table
	authority RewardAuthority
	closer    DayCloser
	monster   MonsterTarget
	locks     *concurrency.LockManager
	now       func() time.Time
	newID     func() string
}

// Option configures optional collaborators on the service.
type Option func(*service)

// WithAuthority attaches the server reward authority; without it the
// engine applies rewards locally only.
func WithAuthority(a RewardAuthority) Option {
	return func(s *service) { s.authority = a }
}

// WithDayCloser gates reward-granting operations on daily rollover.
func WithDayCloser(c DayCloser) Option {
	return func(s *service) { s.closer = c }
}

// WithMonsterTarget routes completed-activity damage to the daily monster.
func WithMonsterTarget(m MonsterTarget) Option {
	return func(s *service) { s.monster = m }
}

// NewService creates a new activity service.
func NewService(repo repository.Activity, charSvc character.Service, table *reward.Table, opts ...Option) Service {
	s := &service{
		repo:    repo,
		charSvc: charSvc,
		table:   table,
		locks:   concurrency.NewLockManager(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureDayClosed runs the rollover guard when one is attached.
func (s *service) ensureDayClosed(ctx context.Context, userID string) error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.EnsureToday(ctx, userID); err != nil {
		return fmt.Errorf("daily rollover must complete before rewards: %w", err)
	}
	return nil
}

// damageMonster forwards attribute-tagged damage, best effort.
func (s *service) damageMonster(ctx context.Context, userID string, attrs []domain.Attribute) {
	if s.monster == nil {
		return
	}
	// Monster damage is a secondary loop; a failure never blocks the
	// reward path.
	_ = s.monster.ApplyActivityDamage(ctx, userID, attrs)
}

// habitOwnedBy loads a habit and enforces ownership. A missing item and an
// item owned by someone else look the same to the caller: (nil, nil).
func (s *service) habitOwnedBy(ctx context.Context, userID, id string) (*domain.Habit, error) {
	h, err := s.repo.GetHabit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	if h == nil || h.UserID != userID {
		return nil, nil
	}
	return h, nil
}

func (s *service) dailyOwnedBy(ctx context.Context, userID, id string) (*domain.Daily, error) {
	d, err := s.repo.GetDaily(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily: %w", err)
	}
	if d == nil || d.UserID != userID {
		return nil, nil
	}
	return d, nil
}

func (s *service) taskOwnedBy(ctx context.Context, userID, id string) (*domain.Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func firstAttribute(attrs []domain.Attribute) domain.Attribute {
	if len(attrs) > 0 {
		return attrs[0]
	}
	return domain.AttributeDiscipline
}
