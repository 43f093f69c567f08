package repository

import (
	"context"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// Activity defines the interface for habit/daily/task persistence. Each
// record is saved whole on every mutation; saving an unknown ID inserts it.
// Get methods return (nil, nil) for unknown IDs so callers can treat
// missing items as a silent no-op.
type Activity interface {
	ListHabits(ctx context.Context, userID string) ([]domain.Habit, error)
	GetHabit(ctx context.Context, id string) (*domain.Habit, error)
	SaveHabit(ctx context.Context, habit *domain.Habit) error
	DeleteHabit(ctx context.Context, id string) error

	ListDailies(ctx context.Context, userID string) ([]domain.Daily, error)
	GetDaily(ctx context.Context, id string) (*domain.Daily, error)
	SaveDaily(ctx context.Context, daily *domain.Daily) error
	DeleteDaily(ctx context.Context, id string) error

	ListTasks(ctx context.Context, userID string) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	SaveTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}
