package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// ActivityRepository implements habit/daily/task persistence for PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

var _ repository.Activity = (*ActivityRepository)(nil)

func encodeAttributes(attrs []domain.Attribute) ([]byte, error) {
	if attrs == nil {
		attrs = []domain.Attribute{}
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}
	return data, nil
}

// ---- habits ----

const habitColumns = `habit_id, user_id, title, notes, attributes, difficulty, streak, negative_streak, last_completed, last_action_date, position, created_at`

func scanHabit(row pgx.Row) (*domain.Habit, error) {
	var (
		h          domain.Habit
		notes      pgtype.Text
		attrs      []byte
		completed  pgtype.Timestamptz
		actionDate pgtype.Date
	)
	err := row.Scan(&h.ID, &h.UserID, &h.Title, &notes, &attrs, &h.Difficulty,
		&h.Streak, &h.NegativeStreak, &completed, &actionDate, &h.Position, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan habit: %w", err)
	}
	h.Notes = notes.String
	h.LastCompleted = ptrTime(completed)
	h.LastActionDate = fromPGDate(actionDate)
	if err := json.Unmarshal(attrs, &h.Attributes); err != nil {
		return nil, fmt.Errorf("failed to decode habit attributes: %w", err)
	}
	return &h, nil
}

func (r *ActivityRepository) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1 ORDER BY position, created_at`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

func (r *ActivityRepository) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE habit_id = $1`
	return scanHabit(r.db.QueryRow(ctx, query, id))
}

func (r *ActivityRepository) SaveHabit(ctx context.Context, h *domain.Habit) error {
	uid, err := parseUserUUID(h.UserID)
	if err != nil {
		return err
	}
	attrs, err := encodeAttributes(h.Attributes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO habits (habit_id, user_id, title, notes, attributes, difficulty, streak, negative_streak, last_completed, last_action_date, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (habit_id) DO UPDATE SET
			title = EXCLUDED.title,
			notes = EXCLUDED.notes,
			attributes = EXCLUDED.attributes,
			difficulty = EXCLUDED.difficulty,
			streak = EXCLUDED.streak,
			negative_streak = EXCLUDED.negative_streak,
			last_completed = EXCLUDED.last_completed,
			last_action_date = EXCLUDED.last_action_date,
			position = EXCLUDED.position
	`
	_, err = r.db.Exec(ctx, query, h.ID, uid, h.Title, h.Notes, attrs, h.Difficulty,
		h.Streak, h.NegativeStreak, h.LastCompleted, pgDate(h.LastActionDate), h.Position, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

func (r *ActivityRepository) DeleteHabit(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM habits WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// ---- dailies ----

const dailyColumns = `daily_id, user_id, title, notes, attributes, difficulty, streak, completed_today, last_completed, position, created_at`

func scanDaily(row pgx.Row) (*domain.Daily, error) {
	var (
		d         domain.Daily
		notes     pgtype.Text
		attrs     []byte
		completed pgtype.Timestamptz
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &notes, &attrs, &d.Difficulty,
		&d.Streak, &d.CompletedToday, &completed, &d.Position, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily: %w", err)
	}
	d.Notes = notes.String
	d.LastCompleted = ptrTime(completed)
	if err := json.Unmarshal(attrs, &d.Attributes); err != nil {
		return nil, fmt.Errorf("failed to decode daily attributes: %w", err)
	}
	return &d, nil
}

func (r *ActivityRepository) ListDailies(ctx context.Context, userID string) ([]domain.Daily, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + dailyColumns + ` FROM dailies WHERE user_id = $1 ORDER BY position, created_at`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query dailies: %w", err)
	}
	defer rows.Close()

	var dailies []domain.Daily
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		dailies = append(dailies, *d)
	}
	return dailies, rows.Err()
}

func (r *ActivityRepository) GetDaily(ctx context.Context, id string) (*domain.Daily, error) {
	query := `SELECT ` + dailyColumns + ` FROM dailies WHERE daily_id = $1`
	return scanDaily(r.db.QueryRow(ctx, query, id))
}

func (r *ActivityRepository) SaveDaily(ctx context.Context, d *domain.Daily) error {
	uid, err := parseUserUUID(d.UserID)
	if err != nil {
		return err
	}
	attrs, err := encodeAttributes(d.Attributes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO dailies (daily_id, user_id, title, notes, attributes, difficulty, streak, completed_today, last_completed, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (daily_id) DO UPDATE SET
			title = EXCLUDED.title,
			notes = EXCLUDED.notes,
			attributes = EXCLUDED.attributes,
			difficulty = EXCLUDED.difficulty,
			streak = EXCLUDED.streak,
			completed_today = EXCLUDED.completed_today,
			last_completed = EXCLUDED.last_completed,
			position = EXCLUDED.position
	`
	_, err = r.db.Exec(ctx, query, d.ID, uid, d.Title, d.Notes, attrs, d.Difficulty,
		d.Streak, d.CompletedToday, d.LastCompleted, d.Position, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save daily: %w", err)
	}
	return nil
}

func (r *ActivityRepository) DeleteDaily(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM dailies WHERE daily_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete daily: %w", err)
	}
	return nil
}

// ---- tasks ----

const taskColumns = `task_id, user_id, title, notes, attributes, difficulty, due_date, completed, completed_at, position, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t           domain.Task
		notes       pgtype.Text
		attrs       []byte
		due         pgtype.Date
		completedAt pgtype.Timestamptz
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &notes, &attrs, &t.Difficulty,
		&due, &t.Completed, &completedAt, &t.Position, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	t.Notes = notes.String
	t.DueDate = fromPGDate(due)
	t.CompletedAt = ptrTime(completedAt)
	if err := json.Unmarshal(attrs, &t.Attributes); err != nil {
		return nil, fmt.Errorf("failed to decode task attributes: %w", err)
	}
	return &t, nil
}

func (r *ActivityRepository) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	uid, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY position, created_at`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *ActivityRepository) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`
	return scanTask(r.db.QueryRow(ctx, query, id))
}

func (r *ActivityRepository) SaveTask(ctx context.Context, t *domain.Task) error {
	uid, err := parseUserUUID(t.UserID)
	if err != nil {
		return err
	}
	attrs, err := encodeAttributes(t.Attributes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (task_id, user_id, title, notes, attributes, difficulty, due_date, completed, completed_at, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (task_id) DO UPDATE SET
			title = EXCLUDED.title,
			notes = EXCLUDED.notes,
			attributes = EXCLUDED.attributes,
			difficulty = EXCLUDED.difficulty,
			due_date = EXCLUDED.due_date,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			position = EXCLUDED.position
	`
	_, err = r.db.Exec(ctx, query, t.ID, uid, t.Title, t.Notes, attrs, t.Difficulty,
		pgDate(t.DueDate), t.Completed, t.CompletedAt, t.Position, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *ActivityRepository) DeleteTask(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
