package activity

import (
	"context"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
)

// snapshot captures the pre-mutation state of everything a reward-bearing
// operation touches. When the authority rejects the grant, restore puts the
// world back exactly as it was.
type snapshot struct {
	character *domain.Character
	habit     *domain.Habit
	daily     *domain.Daily
	task      *domain.Task
}

func (s *service) restore(ctx context.Context, snap snapshot) error {
	log := logger.FromContext(ctx)
	if snap.habit != nil {
		if err := s.repo.SaveHabit(ctx, snap.habit); err != nil {
			return fmt.Errorf("rolling back habit %s: %w", snap.habit.ID, err)
		}
	}
	if snap.daily != nil {
		if err := s.repo.SaveDaily(ctx, snap.daily); err != nil {
			return fmt.Errorf("rolling back daily %s: %w", snap.daily.ID, err)
		}
	}
	if snap.task != nil {
		if err := s.repo.SaveTask(ctx, snap.task); err != nil {
			return fmt.Errorf("rolling back task %s: %w", snap.task.ID, err)
		}
	}
	if snap.character != nil {
		if err := s.charSvc.RestoreCharacter(ctx, snap.character); err != nil {
			return fmt.Errorf("rolling back character %s: %w", snap.character.UserID, err)
		}
	}
	log.Info("rolled back optimistic reward application")
	return nil
}

// grantAndReconcile sends the grant to the authority after the local
// mutation has been applied. On rejection the snapshot is restored and the
// authority error is returned. On success the server result is
// authoritative for currency; a divergence from the local computation is
// logged and left for the next authoritative fetch to settle.
func (s *service) grantAndReconcile(ctx context.Context, snap snapshot, grant domain.RewardGrant, local domain.RewardResult) error {
	if s.authority == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	result, err := s.authority.GrantReward(ctx, grant)
	if err != nil {
		if rbErr := s.restore(ctx, snap); rbErr != nil {
			return fmt.Errorf("reward rejected (%w) and rollback failed: %w", err, rbErr)
		}
		return fmt.Errorf("reward rejected: %w", err)
	}
	if result.XPGained != local.XPGained || result.GoldGained != local.GoldGained {
		log.Warn("reward divergence between local and authority computation",
			"local_xp", local.XPGained, "server_xp", result.XPGained,
			"local_gold", local.GoldGained, "server_gold", result.GoldGained)
	}
	return nil
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	c := *h
	c.Attributes = append([]domain.Attribute(nil), h.Attributes...)
	if h.LastCompleted != nil {
		t := *h.LastCompleted
		c.LastCompleted = &t
	}
	return &c
}

func cloneDaily(d *domain.Daily) *domain.Daily {
	c := *d
	c.Attributes = append([]domain.Attribute(nil), d.Attributes...)
	if d.LastCompleted != nil {
		t := *d.LastCompleted
		c.LastCompleted = &t
	}
	return &c
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	c.Attributes = append([]domain.Attribute(nil), t.Attributes...)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
