package activity

import (
	"context"
	"fmt"
)

// positionOf maps item IDs to their index in the caller-supplied order.
// IDs absent from the order keep their current position, so a reorder
// racing a concurrent add never drops items.
func positionOf(ids []string) map[string]int {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

func (s *service) ReorderHabits(ctx context.Context, userID string, ids []string) error {
	habits, err := s.repo.ListHabits(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	pos := positionOf(ids)
	for i := range habits {
		p, ok := pos[habits[i].ID]
		if !ok {
			continue
		}
		if habits[i].Position == p {
			continue
		}
		habits[i].Position = p
		if err := s.repo.SaveHabit(ctx, &habits[i]); err != nil {
			return fmt.Errorf("failed to save habit order: %w", err)
		}
	}
	return nil
}

func (s *service) ReorderDailies(ctx context.Context, userID string, ids []string) error {
	dailies, err := s.repo.ListDailies(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list dailies: %w", err)
	}
	pos := positionOf(ids)
	for i := range dailies {
		p, ok := pos[dailies[i].ID]
		if !ok {
			continue
		}
		if dailies[i].Position == p {
			continue
		}
		dailies[i].Position = p
		if err := s.repo.SaveDaily(ctx, &dailies[i]); err != nil {
			return fmt.Errorf("failed to save daily order: %w", err)
		}
	}
	return nil
}

func (s *service) ReorderTasks(ctx context.Context, userID string, ids []string) error {
	tasks, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	pos := positionOf(ids)
	for i := range tasks {
		p, ok := pos[tasks[i].ID]
		if !ok {
			continue
		}
		if tasks[i].Position == p {
			continue
		}
		tasks[i].Position = p
		if err := s.repo.SaveTask(ctx, &tasks[i]); err != nil {
			return fmt.Errorf("failed to save task order: %w", err)
		}
	}
	return nil
}

var _ Service = (*service)(nil)
