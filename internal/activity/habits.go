package activity

import (
	"context"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

func (s *service) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	habits, err := s.repo.ListHabits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

func (s *service) AddHabit(ctx context.Context, habit *domain.Habit) error {
	existing, err := s.repo.ListHabits(ctx, habit.UserID)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	habit.ID = s.newID()
	habit.Position = len(existing)
	habit.CreatedAt = s.now()
	habit.Streak = 0
	habit.NegativeStreak = 0
	if err := s.repo.SaveHabit(ctx, habit); err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

func (s *service) UpdateHabit(ctx context.Context, habit *domain.Habit) error {
	current, err := s.habitOwnedBy(ctx, habit.UserID, habit.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrActivityNotFound
	}
	// Edits never touch completion accounting.
	habit.Streak = current.Streak
	habit.NegativeStreak = current.NegativeStreak
	habit.LastCompleted = current.LastCompleted
	habit.LastActionDate = current.LastActionDate
	habit.CreatedAt = current.CreatedAt
	if err := s.repo.SaveHabit(ctx, habit); err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

func (s *service) DeleteHabit(ctx context.Context, userID, id string) error {
	habit, err := s.habitOwnedBy(ctx, userID, id)
	if err != nil {
		return err
	}
	if habit == nil {
		return domain.ErrActivityNotFound
	}
	if err := s.repo.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// CompleteHabit records a positive action: the streak extends, every tagged
// attribute's streak increments, and the tier-scaled reward applies.
// Returns false without error when the habit does not exist.
func (s *service) CompleteHabit(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	habit, err := s.habitOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if habit == nil {
		return false, nil
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return false, err
	}
	snap := snapshot{character: char.Clone(), habit: cloneHabit(habit)}

	now := s.now()
	habit.Streak++
	habit.NegativeStreak = 0
	habit.LastCompleted = &now
	habit.LastActionDate = domain.DateOf(now)
	if err := s.repo.SaveHabit(ctx, habit); err != nil {
		return false, fmt.Errorf("failed to save habit: %w", err)
	}

	grant := domain.RewardGrant{
		ActionType: domain.ActionHabit,
		Difficulty: habit.Difficulty,
		Attribute:  firstAttribute(habit.Attributes),
		Streak:     habit.Streak,
		ItemID:     habit.ID,
	}
	xp, gold := s.table.Compute(grant)

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, xp)
		r.AddGold(c, gold)
		for _, attr := range habit.Attributes {
			r.IncrementAttributeStreak(c, attr)
		}
	}); err != nil {
		return false, err
	}

	local := domain.RewardResult{XPGained: xp, GoldGained: gold}
	if err := s.grantAndReconcile(ctx, snap, grant, local); err != nil {
		return false, err
	}

	s.damageMonster(ctx, userID, habit.Attributes)
	logger.FromContext(ctx).Info("Habit completed",
		"habit_id", habit.ID, "streak", habit.Streak, "xp", xp, "gold", gold)
	return true, nil
}

// FailHabit records a negative action: the positive streak breaks, the
// negative streak extends, a fixed XP penalty applies, and every tagged
// attribute is punitively reset. Returns false without error when the habit
// does not exist.
func (s *service) FailHabit(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	habit, err := s.habitOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if habit == nil {
		return false, nil
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return false, err
	}
	snap := snapshot{character: char.Clone(), habit: cloneHabit(habit)}

	now := s.now()
	habit.Streak = 0
	habit.NegativeStreak++
	habit.LastActionDate = domain.DateOf(now)
	if err := s.repo.SaveHabit(ctx, habit); err != nil {
		return false, fmt.Errorf("failed to save habit: %w", err)
	}

	grant := domain.RewardGrant{
		ActionType: domain.ActionHabit,
		Difficulty: domain.DifficultyNegative,
		Attribute:  firstAttribute(habit.Attributes),
		ItemID:     habit.ID,
	}
	xp, _ := s.table.Compute(grant)

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, xp)
		for _, attr := range habit.Attributes {
			r.ResetAttributeStreak(c, attr)
		}
	}); err != nil {
		return false, err
	}

	local := domain.RewardResult{XPGained: xp}
	if err := s.grantAndReconcile(ctx, snap, grant, local); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("Habit failed",
		"habit_id", habit.ID, "negative_streak", habit.NegativeStreak, "xp", xp)
	return true, nil
}
