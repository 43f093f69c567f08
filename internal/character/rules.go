// Package character implements the character aggregate: the single mutable
// entity holding level, XP, hp, currencies, attribute scores and
// per-attribute streak counters, together with the service that persists
// every state transition.
package character

import (
	"math"

	"github.com/gevornos/Life-is-RPG/internal/domain"
	"github.com/gevornos/Life-is-RPG/internal/reward"
)

// Rules applies atomic state transitions to a character. Level is derived
// from XP on every XP change; it is never written independently.
type Rules struct {
	table *reward.Table
}

// NewRules creates rules bound to a reward table (for the level curve and
// the attribute promotion threshold).
func NewRules(table *reward.Table) *Rules {
	return &Rules{table: table}
}

// AddXP applies a signed XP delta. XP floors at 0 before the level is
// recomputed, so over-penalizing can never produce a negative total or a
// level below 1.
func (r *Rules) AddXP(c *domain.Character, delta int) {
	c.XP += delta
	if c.XP < 0 {
		c.XP = 0
	}
	c.Level = r.table.Curve().LevelFromXP(c.XP)
}

// AddGold applies a signed gold delta, floored at 0. Gold is
// server-authoritative: a client-side call is optimistic only and is
// overwritten by the next authoritative read.
func (r *Rules) AddGold(c *domain.Character, delta int) {
	c.Gold += delta
	if c.Gold < 0 {
		c.Gold = 0
	}
}

// AddGems applies a signed gems delta, floored at 0. Server-authoritative
// like gold.
func (r *Rules) AddGems(c *domain.Character, delta int) {
	c.Gems += delta
	if c.Gems < 0 {
		c.Gems = 0
	}
}

// TakeDamage reduces HP, floored at 0. The transition to 0 costs 10% of
// current XP; further hits while already at 0 are penalty-free, and
// attributes are untouched.
func (r *Rules) TakeDamage(c *domain.Character, amount int) {
	wasAlive := c.HP > 0
	c.HP -= amount
	if c.HP <= 0 {
		c.HP = 0
		if wasAlive {
			r.AddXP(c, -int(math.Floor(float64(c.XP)*domain.DeathXPPenaltyFraction)))
		}
	}
}

// Heal raises HP, capped at MaxHP.
func (r *Rules) Heal(c *domain.Character, amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// IncrementAttributeStreak advances an attribute streak by one. Reaching
// the promotion threshold converts the streak into a permanent attribute
// point and resets the counter. This is the sole path by which attribute
// scores grow.
func (r *Rules) IncrementAttributeStreak(c *domain.Character, attr domain.Attribute) {
	c.Streaks[attr]++
	if c.Streaks[attr] >= r.table.PromotionThreshold() {
		c.Scores[attr]++
		c.Streaks[attr] = 0
	}
}

// ResetAttributeStreak zeroes an attribute streak AND applies the
// configured penalty to the permanent score, floored at the minimum of 1.
// It is punitive, not idempotent: every call penalizes again, so callers
// must guarantee at-most-once-per-miss-event invocation.
func (r *Rules) ResetAttributeStreak(c *domain.Character, attr domain.Attribute) {
	c.Streaks[attr] = 0
	c.Scores[attr] += r.table.AttributeMissPenalty()
	if c.Scores[attr] < domain.MinAttributeScore {
		c.Scores[attr] = domain.MinAttributeScore
	}
}
