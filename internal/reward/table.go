package reward

import (
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/progression"
)

// Table is the immutable-per-session reward lookup. Unknown keys resolve
// to 0 so the engine tolerates config versions that define more or fewer
// rewards than this build knows about.
type Table struct {
	xp        map[string]int
	gold      map[string]int
	penalties map[string]int
	threshold int
	curve     *progression.Curve
}

// Curve returns the level progression curve loaded with the table.
func (t *Table) Curve() *progression.Curve {
	return t.curve
}

// PromotionThreshold returns the attribute-streak length that promotes
// into a permanent attribute point.
func (t *Table) PromotionThreshold() int {
	return t.threshold
}

// XP returns the configured XP amount for a table key, 0 when unknown.
func (t *Table) XP(key string) int {
	return t.xp[key]
}

// Gold returns the configured gold amount for a table key, 0 when unknown.
func (t *Table) Gold(key string) int {
	return t.gold[key]
}

// Penalty returns the configured penalty amount, 0 when unknown. Penalties
// are stored signed: an XP penalty is a negative number.
func (t *Table) Penalty(key string) int {
	return t.penalties[key]
}

// HabitXP returns the XP for a positive habit action at the given tier:
// easy pays the base, medium pays 1.5x floored, hard pays double.
func (t *Table) HabitXP(difficulty domain.Difficulty) int {
	base := t.xp[KeyHabitPositive]
	switch difficulty {
	case domain.DifficultyMedium:
		return base * 3 / 2
	case domain.DifficultyHard:
		return base * 2
	default:
		return base
	}
}

// HabitPenaltyXP returns the signed XP delta for a negative habit action.
func (t *Table) HabitPenaltyXP() int {
	return t.xp[KeyHabitNegative]
}

// HabitGold returns the gold for a positive habit action. Negative habit
// actions never touch gold.
func (t *Table) HabitGold() int {
	return t.gold[KeyHabitPositive]
}

// DailyXP returns the XP for completing a daily at the given streak value,
// where streak is the new streak after the completion counts.
func (t *Table) DailyXP(streak int) int {
	return t.xp[KeyDailyBase] + streak*t.xp[KeyDailyStreakBonus]
}

// DailyGold returns the gold for completing a daily at the given streak.
func (t *Table) DailyGold(streak int) int {
	return t.gold[KeyDailyBase] + streak*t.gold[KeyDailyStreakBonus]
}

// TaskXP returns the XP for completing a task of the given tier.
func (t *Table) TaskXP(difficulty domain.Difficulty) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return t.xp[KeyTaskEasy]
	case domain.DifficultyMedium:
		return t.xp[KeyTaskMedium]
	case domain.DifficultyHard:
		return t.xp[KeyTaskHard]
	default:
		return 0
	}
}

// TaskGold returns the gold for completing a task of the given tier.
func (t *Table) TaskGold(difficulty domain.Difficulty) int {
	switch difficulty {
	case domain.DifficultyEasy:
		return t.gold[KeyTaskEasy]
	case domain.DifficultyMedium:
		return t.gold[KeyTaskMedium]
	case domain.DifficultyHard:
		return t.gold[KeyTaskHard]
	default:
		return 0
	}
}

// DailyMissPenaltyXP returns the signed XP delta for a missed daily.
func (t *Table) DailyMissPenaltyXP() int {
	return t.penalties[KeyDailyMissedXP]
}

// AttributeMissPenalty returns the signed attribute-score delta applied
// when an attribute streak is punitively reset.
func (t *Table) AttributeMissPenalty() int {
	return t.penalties[KeyDailyMissedAttribute]
}

// Compute resolves a reward grant claim into signed XP and gold deltas.
// This is the single formula shared by the client-side optimistic path and
// the server-side authority. For habits, tier scaling applies only when the
// caller resolved the habit's own difficulty; a bare positive/negative sign
// pays the flat base.
func (t *Table) Compute(grant domain.RewardGrant) (xp, gold int) {
	switch grant.ActionType {
	case domain.ActionHabit:
		switch {
		case grant.Difficulty == domain.DifficultyNegative:
			return t.HabitPenaltyXP(), 0
		case grant.Difficulty.IsTier():
			return t.HabitXP(grant.Difficulty), t.HabitGold()
		default:
			return t.xp[KeyHabitPositive], t.HabitGold()
		}
	case domain.ActionDaily:
		return t.DailyXP(grant.Streak), t.DailyGold(grant.Streak)
	case domain.ActionTask:
		return t.TaskXP(grant.Difficulty), t.TaskGold(grant.Difficulty)
	default:
		return 0, 0
	}
}
