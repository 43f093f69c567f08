// Package rollover closes out the previous accounting day: it applies miss
// penalties for dailies and untouched habits, clears per-day completion
// flags, and advances the persisted last-reset date that makes the whole
// pass idempotent.
package rollover

import (
	"context"
	"fmt"
	"time"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/concurrency"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/metrics"
	"github.com/gevornos/Life-is-RPG/internal/repository"
	"github.com/gevornos/Life-is-RPG/internal/reward"
)

// Reconciler runs the daily rollover. It must complete (or no-op) before
// any reward-granting operation, so a stale day is never double-counted.
type Reconciler struct {
	repo    repository.Activity
	marker  repository.ResetMarker
	charSvc character.Service
	table   *reward.Table
	now     func() time.Time

	// Serializes concurrent EnsureToday calls per user within one
	// process. Across processes the persisted marker is the idempotence
	// guard.
	locks *concurrency.LockManager
}

// NewReconciler creates a rollover reconciler.
func NewReconciler(repo repository.Activity, marker repository.ResetMarker, charSvc character.Service, table *reward.Table) *Reconciler {
	return &Reconciler{
		repo:    repo,
		marker:  marker,
		charSvc: charSvc,
		table:   table,
		now:     time.Now,
		locks:   concurrency.NewLockManager(),
	}
}

// EnsureToday runs the rollover for the given user if the persisted marker
// is behind today's date. Repeated calls on the same day are no-ops.
func (r *Reconciler) EnsureToday(ctx context.Context, userID string) error {
	unlock := r.locks.Lock(userID)
	defer unlock()

	today := domain.DateOf(r.now())
	last, exists, err := r.marker.LastResetDate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to read last reset date: %w", err)
	}
	if exists && last.Equal(today) {
		return nil
	}

	log := logger.FromContext(ctx)

	// First run has no previous day to account for; penalties only apply
	// when a prior marker proves a day actually elapsed.
	if exists {
		if err := r.applyMissPenalties(ctx, userID, last, today); err != nil {
			return err
		}
	}

	if err := r.clearCompletedToday(ctx, userID); err != nil {
		return err
	}

	if err := r.marker.SetLastResetDate(ctx, userID, today); err != nil {
		return fmt.Errorf("failed to persist reset date: %w", err)
	}

	log.Info("Daily rollover complete", "user_id", userID, "date", today.String(), "first_run", !exists)
	return nil
}

// applyMissPenalties charges every daily that was not completed yesterday
// and every habit with no action on the day being closed. Each miss resets
// the streak and punitively resets the tagged attribute streaks; the
// reconciler runs at most once per calendar day, which is what keeps the
// non-idempotent attribute reset at one application per miss event.
func (r *Reconciler) applyMissPenalties(ctx context.Context, userID string, closed, today domain.Date) error {
	log := logger.FromContext(ctx)

	dailies, err := r.repo.ListDailies(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list dailies: %w", err)
	}
	for i := range dailies {
		d := &dailies[i]
		if d.Streak == 0 || d.LastCompletedDate().DayBefore(today) {
			continue
		}

		d.Streak = 0
		if err := r.repo.SaveDaily(ctx, d); err != nil {
			return fmt.Errorf("failed to save daily: %w", err)
		}

		penalty := r.table.DailyMissPenaltyXP()
		if _, err := r.charSvc.Mutate(ctx, userID, func(rules *character.Rules, c *domain.Character) {
			rules.AddXP(c, penalty)
			for _, attr := range d.Attributes {
				rules.ResetAttributeStreak(c, attr)
			}
		}); err != nil {
			return err
		}
		metrics.RolloverPenalties.WithLabelValues("daily").Inc()
		log.Info("Daily missed", "daily_id", d.ID, "xp_penalty", penalty)
	}

	habits, err := r.repo.ListHabits(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	for i := range habits {
		h := &habits[i]
		// A habit is missed when it saw no action on the day being
		// closed out.
		if h.LastActionDate.Equal(closed) {
			continue
		}

		h.Streak = 0
		h.NegativeStreak++
		if err := r.repo.SaveHabit(ctx, h); err != nil {
			return fmt.Errorf("failed to save habit: %w", err)
		}

		penalty := r.table.HabitPenaltyXP()
		if _, err := r.charSvc.Mutate(ctx, userID, func(rules *character.Rules, c *domain.Character) {
			rules.AddXP(c, penalty)
			for _, attr := range h.Attributes {
				rules.ResetAttributeStreak(c, attr)
			}
		}); err != nil {
			return err
		}
		metrics.RolloverPenalties.WithLabelValues("habit").Inc()
		log.Info("Habit neglected", "habit_id", h.ID, "xp_penalty", penalty)
	}

	return nil
}

// clearCompletedToday resets the per-day completion flag on every daily.
// Streaks are untouched here; the penalty step is the only place streaks
// change during rollover.
func (r *Reconciler) clearCompletedToday(ctx context.Context, userID string) error {
	dailies, err := r.repo.ListDailies(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list dailies: %w", err)
	}
	for i := range dailies {
		if !dailies[i].CompletedToday {
			continue
		}
		dailies[i].CompletedToday = false
		if err := r.repo.SaveDaily(ctx, &dailies[i]); err != nil {
			return fmt.Errorf("failed to save daily: %w", err)
		}
	}
	return nil
}
