package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// SchemaVersion is baked into every storage key. Bump it when a stored
// shape changes incompatibly; old keys are simply never read again.
const SchemaVersion = 1

// Storage keys, one per logical store.
const (
	keyCharacter = "character"
	keyHabits    = "habits"
	keyDailies   = "dailies"
	keyTasks     = "tasks"
	keyMonster   = "monster"
	keyLastReset = "last_reset_date"
)

func versionedKey(name string) string {
	return fmt.Sprintf("%s_v%d", name, SchemaVersion)
}

// Store implements the character, activity, monster and reset-marker
// repositories over a KV backend. It serves the single-user client mode:
// records are held in memory after the first read and the full state of a
// logical store is written back on every mutation.
type Store struct {
	kv KV
}

// Compile-time interface checks.
var (
	_ repository.Character   = (*Store)(nil)
	_ repository.Activity    = (*Store)(nil)
	_ repository.Monster     = (*Store)(nil)
	_ repository.ResetMarker = (*Store)(nil)
)

// NewStore creates a store over the given KV backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// --- character ---

func (s *Store) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	var c domain.Character
	ok, err := getJSON(s.kv, versionedKey(keyCharacter), &c)
	if err != nil || !ok {
		return nil, err
	}
	if c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (s *Store) SaveCharacter(ctx context.Context, character *domain.Character) error {
	return setJSON(s.kv, versionedKey(keyCharacter), character)
}

func (s *Store) DeleteCharacter(ctx context.Context, userID string) error {
	return s.kv.Delete(versionedKey(keyCharacter))
}

// ListUserIDs returns the single stored character's owner, if any.
func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	var c domain.Character
	ok, err := getJSON(s.kv, versionedKey(keyCharacter), &c)
	if err != nil || !ok {
		return nil, err
	}
	return []string{c.UserID}, nil
}

// BeginTx returns a pass-through transaction: the client runtime is
// single-writer per user, so no locking is needed.
func (s *Store) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	return storeTx{s}, nil
}

type storeTx struct {
	s *Store
}

func (t storeTx) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	return t.s.GetCharacter(ctx, userID)
}

func (t storeTx) SaveCharacter(ctx context.Context, character *domain.Character) error {
	return t.s.SaveCharacter(ctx, character)
}

func (t storeTx) Commit(ctx context.Context) error { return nil }

func (t storeTx) Rollback(ctx context.Context) error { return nil }

// --- habits ---

func (s *Store) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	var habits []domain.Habit
	if _, err := getJSON(s.kv, versionedKey(keyHabits), &habits); err != nil {
		return nil, err
	}
	mine := filterByUser(habits, userID, func(h domain.Habit) string { return h.UserID })
	sortByPosition(mine, func(h domain.Habit) int { return h.Position })
	return mine, nil
}

func (s *Store) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	var habits []domain.Habit
	if _, err := getJSON(s.kv, versionedKey(keyHabits), &habits); err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].ID == id {
			return &habits[i], nil
		}
	}
	return nil, nil
}

func (s *Store) SaveHabit(ctx context.Context, habit *domain.Habit) error {
	var habits []domain.Habit
	if _, err := getJSON(s.kv, versionedKey(keyHabits), &habits); err != nil {
		return err
	}
	habits = upsert(habits, *habit, func(h domain.Habit) string { return h.ID })
	return setJSON(s.kv, versionedKey(keyHabits), habits)
}

func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	var habits []domain.Habit
	if _, err := getJSON(s.kv, versionedKey(keyHabits), &habits); err != nil {
		return err
	}
	habits = remove(habits, id, func(h domain.Habit) string { return h.ID })
	return setJSON(s.kv, versionedKey(keyHabits), habits)
}

// --- dailies ---

func (s *Store) ListDailies(ctx context.Context, userID string) ([]domain.Daily, error) {
	var dailies []domain.Daily
	if _, err := getJSON(s.kv, versionedKey(keyDailies), &dailies); err != nil {
		return nil, err
	}
	mine := filterByUser(dailies, userID, func(d domain.Daily) string { return d.UserID })
	sortByPosition(mine, func(d domain.Daily) int { return d.Position })
	return mine, nil
}

func (s *Store) GetDaily(ctx context.Context, id string) (*domain.Daily, error) {
	var dailies []domain.Daily
	if _, err := getJSON(s.kv, versionedKey(keyDailies), &dailies); err != nil {
		return nil, err
	}
	for i := range dailies {
		if dailies[i].ID == id {
			return &dailies[i], nil
		}
	}
	return nil, nil
}

func (s *Store) SaveDaily(ctx context.Context, daily *domain.Daily) error {
	var dailies []domain.Daily
	if _, err := getJSON(s.kv, versionedKey(keyDailies), &dailies); err != nil {
		return err
	}
	dailies = upsert(dailies, *daily, func(d domain.Daily) string { return d.ID })
	return setJSON(s.kv, versionedKey(keyDailies), dailies)
}

func (s *Store) DeleteDaily(ctx context.Context, id string) error {
	var dailies []domain.Daily
	if _, err := getJSON(s.kv, versionedKey(keyDailies), &dailies); err != nil {
		return err
	}
	dailies = remove(dailies, id, func(d domain.Daily) string { return d.ID })
	return setJSON(s.kv, versionedKey(keyDailies), dailies)
}

// --- tasks ---

func (s *Store) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	var tasks []domain.Task
	if _, err := getJSON(s.kv, versionedKey(keyTasks), &tasks); err != nil {
		return nil, err
	}
	mine := filterByUser(tasks, userID, func(t domain.Task) string { return t.UserID })
	sortByPosition(mine, func(t domain.Task) int { return t.Position })
	return mine, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var tasks []domain.Task
	if _, err := getJSON(s.kv, versionedKey(keyTasks), &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

func (s *Store) SaveTask(ctx context.Context, task *domain.Task) error {
	var tasks []domain.Task
	if _, err := getJSON(s.kv, versionedKey(keyTasks), &tasks); err != nil {
		return err
	}
	tasks = upsert(tasks, *task, func(t domain.Task) string { return t.ID })
	return setJSON(s.kv, versionedKey(keyTasks), tasks)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	var tasks []domain.Task
	if _, err := getJSON(s.kv, versionedKey(keyTasks), &tasks); err != nil {
		return err
	}
	tasks = remove(tasks, id, func(t domain.Task) string { return t.ID })
	return setJSON(s.kv, versionedKey(keyTasks), tasks)
}

// --- monster ---

func (s *Store) GetActiveMonster(ctx context.Context, userID string) (*domain.Monster, error) {
	var m domain.Monster
	ok, err := getJSON(s.kv, versionedKey(keyMonster), &m)
	if err != nil || !ok {
		return nil, err
	}
	if m.UserID != userID {
		return nil, nil
	}
	return &m, nil
}

func (s *Store) SaveMonster(ctx context.Context, monster *domain.Monster) error {
	return setJSON(s.kv, versionedKey(keyMonster), monster)
}

// --- reset marker ---

func (s *Store) LastResetDate(ctx context.Context, userID string) (domain.Date, bool, error) {
	data, ok, err := s.kv.Get(versionedKey(keyLastReset))
	if err != nil || !ok {
		return domain.Date{}, false, err
	}
	date, err := domain.ParseDate(string(data))
	if err != nil {
		// Unreadable marker is treated as first run.
		return domain.Date{}, false, nil
	}
	return date, true, nil
}

func (s *Store) SetLastResetDate(ctx context.Context, userID string, date domain.Date) error {
	return s.kv.Set(versionedKey(keyLastReset), []byte(date.String()))
}

// --- helpers ---

func filterByUser[T any](items []T, userID string, owner func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if owner(item) == userID {
			out = append(out, item)
		}
	}
	return out
}

func sortByPosition[T any](items []T, position func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return position(items[i]) < position(items[j])
	})
}

func upsert[T any](items []T, item T, key func(T) string) []T {
	for i := range items {
		if key(items[i]) == key(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
