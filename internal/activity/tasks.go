package activity

import (
	"context"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

func (s *service) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *service) AddTask(ctx context.Context, task *domain.Task) error {
	existing, err := s.repo.ListTasks(ctx, task.UserID)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	task.ID = s.newID()
	task.Position = len(existing)
	task.CreatedAt = s.now()
	task.Completed = false
	task.CompletedAt = nil
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (s *service) UpdateTask(ctx context.Context, task *domain.Task) error {
	current, err := s.taskOwnedBy(ctx, task.UserID, task.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrActivityNotFound
	}
	task.Completed = current.Completed
	task.CompletedAt = current.CompletedAt
	task.CreatedAt = current.CreatedAt
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (s *service) DeleteTask(ctx context.Context, userID, id string) error {
	task, err := s.taskOwnedBy(ctx, userID, id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrActivityNotFound
	}
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CompleteTask marks a one-shot task done and pays the tier reward. No
// streak is involved. Returns false without error when the task does not
// exist or is already completed.
func (s *service) CompleteTask(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	task, err := s.taskOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if task == nil || task.Completed {
		return false, nil
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return false, err
	}
	snap := snapshot{character: char.Clone(), task: cloneTask(task)}

	now := s.now()
	task.Completed = true
	task.CompletedAt = &now
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return false, fmt.Errorf("failed to save task: %w", err)
	}

	grant := domain.RewardGrant{
		ActionType: domain.ActionTask,
		Difficulty: task.Difficulty,
		Attribute:  firstAttribute(task.Attributes),
		ItemID:     task.ID,
	}
	xp, gold := s.table.Compute(grant)

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, xp)
		r.AddGold(c, gold)
		for _, attr := range task.Attributes {
			r.IncrementAttributeStreak(c, attr)
		}
	}); err != nil {
		return false, err
	}

	local := domain.RewardResult{XPGained: xp, GoldGained: gold}
	if err := s.grantAndReconcile(ctx, snap, grant, local); err != nil {
		return false, err
	}

	s.damageMonster(ctx, userID, task.Attributes)
	logger.FromContext(ctx).Info("Task completed",
		"task_id", task.ID, "xp", xp, "gold", gold)
	return true, nil
}

// UncompleteTask toggles a task back to open. The XP and gold it paid are
// taken back, and every tagged attribute's streak is punitively reset.
// Undoing a task is treated like a failure, not a pure inverse, so the
// completion/undo pair is XP-neutral but not streak-neutral. Returns false
// without error when the task does not exist or is not completed.
func (s *service) UncompleteTask(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	task, err := s.taskOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if task == nil || !task.Completed {
		return false, nil
	}

	xp := s.table.TaskXP(task.Difficulty)
	gold := s.table.TaskGold(task.Difficulty)

	task.Completed = false
	task.CompletedAt = nil
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return false, fmt.Errorf("failed to save task: %w", err)
	}

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, -xp)
		r.AddGold(c, -gold)
		for _, attr := range task.Attributes {
			r.ResetAttributeStreak(c, attr)
		}
	}); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("Task uncompleted",
		"task_id", task.ID, "xp_refunded", -xp, "gold_refunded", -gold)
	return true, nil
}
