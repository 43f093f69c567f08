// Package authority implements the server reward authority: the service
// that independently validates and recomputes every reward claim against
// persisted state, and the HTTP client the engine uses to reach it.
package authority

import (
	"context"
	"errors"
	"fmt"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/metrics"
	"github.com/gevornos/Life-is-RPG/internal/repository"
	"github.com/gevornos/Life-is-RPG/internal/reward"
)

// Service validates and applies reward grants with the server's own copy of
// the data. The caller's identity comes from the session, never the body.
type Service interface {
	GrantReward(ctx context.Context, userID string, grant domain.RewardGrant) (*domain.RewardResult, error)
}

type service struct {
	characters repository.Character
	activities repository.Activity
	table      *reward.Table
	rules      *character.Rules
}

// NewService creates the server-side grant service.
func NewService(characters repository.Character, activities repository.Activity, table *reward.Table) Service {
	return &service{
		characters: characters,
		activities: activities,
		table:      table,
		rules:      character.NewRules(table),
	}
}

// GrantReward resolves the claimed item, recomputes the reward from the
// table, and applies it to the character inside a row-locking transaction
// so concurrent grants for the same user cannot lose updates.
func (s *service) GrantReward(ctx context.Context, userID string, grant domain.RewardGrant) (*domain.RewardResult, error) {
	if !grant.ActionType.IsValid() {
		metrics.RewardsRejected.WithLabelValues("invalid_input").Inc()
		return nil, fmt.Errorf("%w: unknown action type %q", domain.ErrInvalidInput, grant.ActionType)
	}

	resolved, err := s.resolveGrant(ctx, userID, grant)
	if err != nil {
		metrics.RewardsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	xp, gold := s.table.Compute(resolved)

	tx, err := s.characters.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	c, err := tx.GetCharacterForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock character: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCharacterNotFound
	}

	levelBefore := c.Level
	s.rules.AddXP(c, xp)
	s.rules.AddGold(c, gold)

	result := &domain.RewardResult{
		XPGained:   xp,
		GoldGained: gold,
	}

	// A daily streak that lands exactly on the promotion threshold pays a
	// permanent attribute point on top of the table reward.
	if resolved.ActionType == domain.ActionDaily && resolved.Streak > 0 &&
		resolved.Streak%s.table.PromotionThreshold() == 0 && resolved.Attribute.IsValid() {
		c.Scores[resolved.Attribute]++
		result.AttributeGained = 1
	}

	if c.Level > levelBefore {
		result.LevelUp = true
		result.NewLevel = c.Level
	}

	if err := tx.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save character: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit grant: %w", err)
	}

	metrics.RewardsGranted.WithLabelValues(string(resolved.ActionType)).Inc()
	if xp > 0 {
		metrics.XPGranted.WithLabelValues(string(resolved.ActionType)).Add(float64(xp))
	}
	if gold > 0 {
		metrics.GoldGranted.WithLabelValues(string(resolved.ActionType)).Add(float64(gold))
	}
	if result.LevelUp {
		metrics.LevelUps.Inc()
	}

	logger.FromContext(ctx).Info("Reward granted",
		"user_id", userID, "action_type", resolved.ActionType,
		"xp", xp, "gold", gold, "level_up", result.LevelUp)
	return result, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotOwner):
		return "not_owner"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

// resolveGrant checks that the claimed item exists and belongs to the
// caller, and replaces client-supplied fields the server can derive itself:
// a habit's tier comes from the stored record, a daily's streak from the
// stored streak when one is available.
func (s *service) resolveGrant(ctx context.Context, userID string, grant domain.RewardGrant) (domain.RewardGrant, error) {
	if grant.ItemID == "" {
		return grant, nil
	}

	switch grant.ActionType {
	case domain.ActionHabit:
		h, err := s.activities.GetHabit(ctx, grant.ItemID)
		if err != nil {
			return grant, fmt.Errorf("failed to resolve habit: %w", err)
		}
		if h == nil || h.UserID != userID {
			return grant, domain.ErrNotOwner
		}
		if grant.Difficulty != domain.DifficultyNegative {
			grant.Difficulty = h.Difficulty
		}
	case domain.ActionDaily:
		d, err := s.activities.GetDaily(ctx, grant.ItemID)
		if err != nil {
			return grant, fmt.Errorf("failed to resolve daily: %w", err)
		}
		if d == nil || d.UserID != userID {
			return grant, domain.ErrNotOwner
		}
		if d.Streak > 0 {
			grant.Streak = d.Streak
		}
	case domain.ActionTask:
		task, err := s.activities.GetTask(ctx, grant.ItemID)
		if err != nil {
			return grant, fmt.Errorf("failed to resolve task: %w", err)
		}
		if task == nil || task.UserID != userID {
			return grant, domain.ErrNotOwner
		}
		grant.Difficulty = task.Difficulty
	}
	return grant, nil
}
