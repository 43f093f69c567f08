package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/progression"
)

func testConfig() *Config {
	return &Config{
		Version: "1",
		XP: map[string]int{
			KeyHabitPositive:    10,
			KeyHabitNegative:    -15,
			KeyDailyBase:        20,
			KeyDailyStreakBonus: 2,
			KeyTaskEasy:         20,
			KeyTaskMedium:       50,
			KeyTaskHard:         100,
		},
		Gold: map[string]int{
			KeyHabitPositive:    2,
			KeyDailyBase:        3,
			KeyDailyStreakBonus: 1,
			KeyTaskEasy:         5,
			KeyTaskMedium:       10,
			KeyTaskHard:         20,
		},
		Penalties: map[string]int{
			KeyDailyMissedXP:        -25,
			KeyDailyMissedAttribute: -1,
		},
		StreakPromotionThreshold: 3,
		LevelProgression: []progression.LevelRequirement{
			{Level: 1, RequiredXPTotal: 0},
			{Level: 2, RequiredXPTotal: 100},
		},
	}
}

func TestHabitXPScalesWithTier(t *testing.T) {
	table := NewTable(testConfig())

	assert.Equal(t, 10, table.HabitXP(domain.DifficultyEasy))
	assert.Equal(t, 15, table.HabitXP(domain.DifficultyMedium))
	assert.Equal(t, 20, table.HabitXP(domain.DifficultyHard))
	assert.Equal(t, -15, table.HabitPenaltyXP())
}

func TestDailyXPIncludesStreakBonus(t *testing.T) {
	table := NewTable(testConfig())

	// base 20, bonus 2 per day of the new streak.
	assert.Equal(t, 26, table.DailyXP(3))
	assert.Equal(t, 22, table.DailyXP(1))
	assert.Equal(t, 6, table.DailyGold(3))
}

func TestUnknownKeysDefaultToZero(t *testing.T) {
	cfg := testConfig()
	delete(cfg.XP, KeyTaskMedium)
	delete(cfg.Gold, KeyHabitPositive)
	table := NewTable(cfg)

	assert.Equal(t, 0, table.TaskXP(domain.DifficultyMedium))
	assert.Equal(t, 0, table.HabitGold())
	assert.Equal(t, 0, table.XP("task_legendary"))
}

func TestCompute(t *testing.T) {
	table := NewTable(testConfig())

	t.Run("habit positive flat base without tier", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{
			ActionType: domain.ActionHabit,
			Difficulty: domain.DifficultyPositive,
		})
		assert.Equal(t, 10, xp)
		assert.Equal(t, 2, gold)
	})

	t.Run("habit positive with resolved tier", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{
			ActionType: domain.ActionHabit,
			Difficulty: domain.DifficultyHard,
		})
		assert.Equal(t, 20, xp)
		assert.Equal(t, 2, gold)
	})

	t.Run("habit negative pays the penalty and no gold", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{
			ActionType: domain.ActionHabit,
			Difficulty: domain.DifficultyNegative,
		})
		assert.Equal(t, -15, xp)
		assert.Equal(t, 0, gold)
	})

	t.Run("daily includes streak bonus", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{
			ActionType: domain.ActionDaily,
			Streak:     3,
		})
		assert.Equal(t, 26, xp)
		assert.Equal(t, 6, gold)
	})

	t.Run("task by tier", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{
			ActionType: domain.ActionTask,
			Difficulty: domain.DifficultyHard,
		})
		assert.Equal(t, 100, xp)
		assert.Equal(t, 20, gold)
	})

	t.Run("unknown action type is zero", func(t *testing.T) {
		xp, gold := table.Compute(domain.RewardGrant{ActionType: "raid"})
		assert.Equal(t, 0, xp)
		assert.Equal(t, 0, gold)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts missing reward keys", func(t *testing.T) {
		cfg := testConfig()
		cfg.XP = nil
		require.NoError(t, Validate(cfg))
	})

	t.Run("rejects duplicate levels", func(t *testing.T) {
		cfg := testConfig()
		cfg.LevelProgression = append(cfg.LevelProgression,
			progression.LevelRequirement{Level: 2, RequiredXPTotal: 150})
		assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
	})

	t.Run("rejects non-monotonic table", func(t *testing.T) {
		cfg := testConfig()
		cfg.LevelProgression = append(cfg.LevelProgression,
			progression.LevelRequirement{Level: 3, RequiredXPTotal: 50})
		assert.ErrorIs(t, Validate(cfg), ErrInvalidConfig)
	})

	t.Run("defaults promotion threshold", func(t *testing.T) {
		cfg := testConfig()
		cfg.StreakPromotionThreshold = 0
		table := NewTable(cfg)
		assert.Equal(t, DefaultPromotionThreshold, table.PromotionThreshold())
	})
}
