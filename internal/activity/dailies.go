package activity

import (
	"context"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

func (s *service) ListDailies(ctx context.Context, userID string) ([]domain.Daily, error) {
	dailies, err := s.repo.ListDailies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dailies: %w", err)
	}
	return dailies, nil
}

func (s *service) AddDaily(ctx context.Context, daily *domain.Daily) error {
	existing, err := s.repo.ListDailies(ctx, daily.UserID)
	if err != nil {
		return fmt.Errorf("failed to list dailies: %w", err)
	}
	daily.ID = s.newID()
	daily.Position = len(existing)
	daily.CreatedAt = s.now()
	daily.Streak = 0
	daily.CompletedToday = false
	if err := s.repo.SaveDaily(ctx, daily); err != nil {
		return fmt.Errorf("failed to save daily: %w", err)
	}
	return nil
}

func (s *service) UpdateDaily(ctx context.Context, daily *domain.Daily) error {
	current, err := s.dailyOwnedBy(ctx, daily.UserID, daily.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrActivityNotFound
	}
	daily.Streak = current.Streak
	daily.CompletedToday = current.CompletedToday
	daily.LastCompleted = current.LastCompleted
	daily.CreatedAt = current.CreatedAt
	if err := s.repo.SaveDaily(ctx, daily); err != nil {
		return fmt.Errorf("failed to save daily: %w", err)
	}
	return nil
}

func (s *service) DeleteDaily(ctx context.Context, userID, id string) error {
	daily, err := s.dailyOwnedBy(ctx, userID, id)
	if err != nil {
		return err
	}
	if daily == nil {
		return domain.ErrActivityNotFound
	}
	if err := s.repo.DeleteDaily(ctx, id); err != nil {
		return fmt.Errorf("failed to delete daily: %w", err)
	}
	return nil
}

// CompleteDaily marks today's completion. The new streak is oldStreak+1
// when the last completion was exactly yesterday, otherwise it restarts at
// 1; the reward scales with the new streak. Returns false without error
// when the daily does not exist or is already completed today.
func (s *service) CompleteDaily(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	daily, err := s.dailyOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if daily == nil || daily.CompletedToday {
		return false, nil
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return false, err
	}
	snap := snapshot{character: char.Clone(), daily: cloneDaily(daily)}

	now := s.now()
	today := domain.DateOf(now)
	if daily.LastCompletedDate().DayBefore(today) {
		daily.Streak++
	} else {
		daily.Streak = 1
	}
	daily.CompletedToday = true
	daily.LastCompleted = &now
	if err := s.repo.SaveDaily(ctx, daily); err != nil {
		return false, fmt.Errorf("failed to save daily: %w", err)
	}

	grant := domain.RewardGrant{
		ActionType: domain.ActionDaily,
		Difficulty: daily.Difficulty,
		Attribute:  firstAttribute(daily.Attributes),
		Streak:     daily.Streak,
		ItemID:     daily.ID,
	}
	xp, gold := s.table.Compute(grant)

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, xp)
		r.AddGold(c, gold)
		for _, attr := range daily.Attributes {
			r.IncrementAttributeStreak(c, attr)
		}
	}); err != nil {
		return false, err
	}

	local := domain.RewardResult{XPGained: xp, GoldGained: gold}
	if err := s.grantAndReconcile(ctx, snap, grant, local); err != nil {
		return false, err
	}

	s.damageMonster(ctx, userID, daily.Attributes)
	logger.FromContext(ctx).Info("Daily completed",
		"daily_id", daily.ID, "streak", daily.Streak, "xp", xp, "gold", gold)
	return true, nil
}

// UncompleteDaily undoes today's completion: the streak decrements (floored
// at 0) and the exact XP and gold that the completion paid, computed from
// the streak value before the decrement, are taken back. Attribute streaks
// are left alone; a daily undo is a correction, not a failure. Returns
// false without error when the daily does not exist or is not completed
// today.
func (s *service) UncompleteDaily(ctx context.Context, userID, id string) (bool, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.ensureDayClosed(ctx, userID); err != nil {
		return false, err
	}

	daily, err := s.dailyOwnedBy(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if daily == nil || !daily.CompletedToday {
		return false, nil
	}

	// The streak before decrement is the value the completion rewarded.
	xp := s.table.DailyXP(daily.Streak)
	gold := s.table.DailyGold(daily.Streak)

	daily.Streak--
	if daily.Streak < 0 {
		daily.Streak = 0
	}
	daily.CompletedToday = false
	daily.LastCompleted = nil
	if err := s.repo.SaveDaily(ctx, daily); err != nil {
		return false, fmt.Errorf("failed to save daily: %w", err)
	}

	if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
		r.AddXP(c, -xp)
		r.AddGold(c, -gold)
	}); err != nil {
		return false, err
	}

	logger.FromContext(ctx).Info("Daily uncompleted",
		"daily_id", daily.ID, "streak", daily.Streak, "xp_refunded", -xp, "gold_refunded", -gold)
	return true, nil
}
