package domain

import "time"

// Monster is the daily encounter: one active instance per user per calendar
// day. Reward amounts are decided at spawn time and granted exactly once
// when the monster is defeated.
type Monster struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Name       string      `json:"name"`
	HP         int         `json:"hp"`
	MaxHP      int         `json:"max_hp"`
	Weakness   []Attribute `json:"weakness"`
	RewardGold int         `json:"reward_gold"`
	RewardXP   int         `json:"reward_xp"`
	Defeated   bool        `json:"defeated"`
	SpawnDate  Date        `json:"spawn_date"`
	CreatedAt  time.Time   `json:"created_at"`
}

// IsWeakTo reports whether any of the given attributes intersects the
// monster's weakness set.
func (m *Monster) IsWeakTo(attrs []Attribute) bool {
	for _, attr := range attrs {
		for _, weak := range m.Weakness {
			if attr == weak {
				return true
			}
		}
	}
	return false
}

// MonsterTemplate describes a spawnable monster archetype. HP and reward
// amounts are rolled within the template range and scaled by player level.
type MonsterTemplate struct {
	Name     string      `json:"name"`
	MinHP    int         `json:"min_hp"`
	MaxHP    int         `json:"max_hp"`
	Weakness []Attribute `json:"weakness"`
	GoldMin  int         `json:"gold_min"`
	GoldMax  int         `json:"gold_max"`
	XPMin    int         `json:"xp_min"`
	XPMax    int         `json:"xp_max"`
}
