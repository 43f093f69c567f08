// Package reward owns the reward table: the static configuration mapping
// (activity kind, difficulty or sign) to XP and gold amounts, the penalty
// constants, and the attribute-streak promotion threshold. The table is
// loaded once at startup and never mutated at runtime.
package reward

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gevornos/Life-is-RPG/internal/progression"
)

// Sentinel errors for the reward config loader
var ErrInvalidConfig = errors.New("invalid reward configuration")

// Reward table keys. Lookups for keys absent from the loaded config
// default to 0 so the engine tolerates table versions that are a strict
// subset or superset of this list.
const (
	KeyHabitPositive    = "habit_positive"
	KeyHabitNegative    = "habit_negative"
	KeyDailyBase        = "daily_base"
	KeyDailyStreakBonus = "daily_streak_bonus"
	KeyTaskEasy         = "task_easy"
	KeyTaskMedium       = "task_medium"
	KeyTaskHard         = "task_hard"
)

// Penalty keys.
const (
	KeyDailyMissedXP        = "daily_missed_xp"
	KeyDailyMissedAttribute = "daily_missed_attribute"
)

// DefaultPromotionThreshold is used when the config omits
// streak_days_for_attribute_point.
const DefaultPromotionThreshold = 3

// Config is the on-disk shape of configs/rewards.json.
type Config struct {
	Version   string         `json:"version"`
	XP        map[string]int `json:"xp"`
	Gold      map[string]int `json:"gold"`
	Penalties map[string]int `json:"penalties"`

	// StreakPromotionThreshold is the attribute-streak length that
	// promotes into a permanent attribute point.
	StreakPromotionThreshold int `json:"streak_days_for_attribute_point"`

	LevelProgression []progression.LevelRequirement `json:"level_progression"`
}

// Load reads and parses a rewards JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reward config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reward config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the reward configuration for structural errors. Missing
// reward keys are allowed (they default to 0); a negative promotion
// threshold or an unsorted level table is not.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if cfg.StreakPromotionThreshold < 0 {
		return fmt.Errorf("%w: streak_days_for_attribute_point must not be negative", ErrInvalidConfig)
	}
	seen := make(map[int]bool, len(cfg.LevelProgression))
	prevTotal := -1
	for _, row := range cfg.LevelProgression {
		if row.Level < 1 {
			return fmt.Errorf("%w: level %d in progression table", ErrInvalidConfig, row.Level)
		}
		if seen[row.Level] {
			return fmt.Errorf("%w: duplicate level %d in progression table", ErrInvalidConfig, row.Level)
		}
		seen[row.Level] = true
		if row.RequiredXPTotal < prevTotal {
			return fmt.Errorf("%w: progression table not monotonic at level %d", ErrInvalidConfig, row.Level)
		}
		prevTotal = row.RequiredXPTotal
	}
	return nil
}

// NewTable builds an immutable lookup table from a validated config.
func NewTable(cfg *Config) *Table {
	threshold := cfg.StreakPromotionThreshold
	if threshold == 0 {
		threshold = DefaultPromotionThreshold
	}
	return &Table{
		xp:        copyMap(cfg.XP),
		gold:      copyMap(cfg.Gold),
		penalties: copyMap(cfg.Penalties),
		threshold: threshold,
		curve:     progression.NewCurve(cfg.LevelProgression),
	}
}

func copyMap(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
