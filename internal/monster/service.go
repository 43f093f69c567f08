// Package monster implements the daily encounter: one monster per user per
// calendar day, damaged by completed activities and paying a precomputed
// reward exactly once on defeat.
package monster

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/concurrency"
	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/metrics"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// Damage tuning. Damage grows with the permanent attribute score, and
// striking a weakness pays half again.
const (
	BaseDamage         = 10
	DamagePerAttribute = 2
	WeaknessMultiplier = 1.5
)

// LevelScalePerLevel is the per-level growth applied to spawned monster hp
// and rewards: a level-1 player sees template values unscaled.
const LevelScalePerLevel = 0.1

// Service defines the monster encounter business logic. Operations
// serialize per user so the defeated flag stays a reliable exactly-once
// guard under concurrent requests.
type Service interface {
	// GetOrSpawn returns today's live monster, spawning a replacement when
	// none exists, the active one is stale, or it was already defeated.
	GetOrSpawn(ctx context.Context, userID string) (*domain.Monster, error)
	// DealDamage applies damage to today's monster and, on the transition
	// to 0 hp, grants the monster's precomputed reward exactly once. It
	// never spawns: a defeated monster absorbs further hits as a no-op, and
	// a missing or stale one yields domain.ErrMonsterNotFound.
	DealDamage(ctx context.Context, userID string, amount int) (*domain.Monster, error)
	// ApplyActivityDamage converts a completed activity's tagged attributes
	// into damage against today's monster, spawning one if needed.
	ApplyActivityDamage(ctx context.Context, userID string, attrs []domain.Attribute) error
}

type service struct {
	repo      repository.Monster
	charSvc   character.Service
	templates []domain.MonsterTemplate
	locks     *concurrency.LockManager
	now       func() time.Time
	intn      func(n int) int
}

// NewService creates a monster service over the given template catalog.
func NewService(repo repository.Monster, charSvc character.Service, cfg *Config) Service {
	return &service{
		repo:      repo,
		charSvc:   charSvc,
		templates: cfg.Templates,
		locks:     concurrency.NewLockManager(),
		now:       time.Now,
		intn:      rand.IntN,
	}
}

func (s *service) GetOrSpawn(ctx context.Context, userID string) (*domain.Monster, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.getOrSpawn(ctx, userID)
}

// getOrSpawn is the lock-free core; callers hold the per-user lock.
func (s *service) getOrSpawn(ctx context.Context, userID string) (*domain.Monster, error) {
	today := domain.DateOf(s.now())

	m, err := s.repo.GetActiveMonster(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get monster: %w", err)
	}
	// A live monster from today carries over; a stale or defeated one is
	// replaced by a fresh spawn.
	if m != nil && m.SpawnDate.Equal(today) && !m.Defeated {
		return m, nil
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return nil, err
	}

	spawned := s.spawn(userID, char.Level, today)
	if err := s.repo.SaveMonster(ctx, spawned); err != nil {
		return nil, fmt.Errorf("failed to save monster: %w", err)
	}

	logger.FromContext(ctx).Info("Monster spawned",
		"user_id", userID, "name", spawned.Name, "hp", spawned.HP, "level", char.Level)
	return spawned, nil
}

// spawn rolls a template and scales its hp and rewards by player level.
func (s *service) spawn(userID string, level int, today domain.Date) *domain.Monster {
	tpl := s.templates[s.intn(len(s.templates))]
	scale := 1 + LevelScalePerLevel*float64(level-1)

	hp := scaleRoll(s.intn, tpl.MinHP, tpl.MaxHP, scale)
	gold := scaleRoll(s.intn, tpl.GoldMin, tpl.GoldMax, scale)
	xp := scaleRoll(s.intn, tpl.XPMin, tpl.XPMax, scale)

	return &domain.Monster{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       tpl.Name,
		HP:         hp,
		MaxHP:      hp,
		Weakness:   append([]domain.Attribute(nil), tpl.Weakness...),
		RewardGold: gold,
		RewardXP:   xp,
		Defeated:   false,
		SpawnDate:  today,
		CreatedAt:  s.now(),
	}
}

// scaleRoll picks a uniform value in [min, max] and applies the level
// scale, flooring to an integer.
func scaleRoll(intn func(int) int, min, max int, scale float64) int {
	v := min
	if max > min {
		v += intn(max - min + 1)
	}
	return int(float64(v) * scale)
}

func (s *service) DealDamage(ctx context.Context, userID string, amount int) (*domain.Monster, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	m, err := s.repo.GetActiveMonster(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get monster: %w", err)
	}
	if m == nil || !m.SpawnDate.Equal(domain.DateOf(s.now())) {
		return nil, domain.ErrMonsterNotFound
	}
	// A defeated monster absorbs further hits without respawning, so a
	// repeated lethal call can never pay a second reward.
	if m.Defeated || amount <= 0 {
		return m, nil
	}
	return s.applyDamage(ctx, userID, m, amount)
}

// applyDamage subtracts hp and pays the reward on the transition to 0.
// Callers hold the per-user lock and have verified m is today's live
// monster, so the defeated flag is a reliable exactly-once guard.
func (s *service) applyDamage(ctx context.Context, userID string, m *domain.Monster, amount int) (*domain.Monster, error) {
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}

	defeated := m.HP == 0
	if defeated {
		m.Defeated = true
	}
	if err := s.repo.SaveMonster(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save monster: %w", err)
	}

	if defeated {
		if _, err := s.charSvc.Mutate(ctx, userID, func(r *character.Rules, c *domain.Character) {
			r.AddXP(c, m.RewardXP)
			r.AddGold(c, m.RewardGold)
		}); err != nil {
			return nil, err
		}
		metrics.MonstersDefeated.Inc()
		logger.FromContext(ctx).Info("Monster defeated",
			"user_id", userID, "name", m.Name, "reward_xp", m.RewardXP, "reward_gold", m.RewardGold)
	}
	return m, nil
}

func (s *service) ApplyActivityDamage(ctx context.Context, userID string, attrs []domain.Attribute) error {
	if len(attrs) == 0 {
		return nil
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	m, err := s.getOrSpawn(ctx, userID)
	if err != nil {
		return err
	}

	char, err := s.charSvc.GetCharacter(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.applyDamage(ctx, userID, m, ComputeAutoDamage(char.Scores, attrs, m))
	return err
}

// ComputeAutoDamage converts an activity's tagged attributes into damage.
// Base damage plus a per-point bonus for each tagged attribute's permanent
// score; hitting any weakness multiplies the total, floored to an integer.
// Pure function, the caller applies the result.
func ComputeAutoDamage(scores map[domain.Attribute]int, activityAttrs []domain.Attribute, m *domain.Monster) int {
	damage := BaseDamage
	for _, attr := range activityAttrs {
		damage += DamagePerAttribute * scores[attr]
	}
	if m.IsWeakTo(activityAttrs) {
		damage = int(float64(damage) * WeaknessMultiplier)
	}
	return damage
}
