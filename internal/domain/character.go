package domain

import "time"

// Character is the single mutable entity a user's progress accrues onto.
// Level is always derived from XP, never set independently. Gold and gems
// are server-authoritative: client-side mutations are optimistic and are
// overwritten by the next authoritative read.
type Character struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	XP        int       `json:"xp"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"max_hp"`
	Gold      int       `json:"gold"`
	Gems      int       `json:"gems"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Permanent attribute scores, minimum 1.
	Scores map[Attribute]int `json:"scores"`

	// Per-attribute streak counters feeding promotion. Reset to 0 on
	// promotion and on punitive resets.
	Streaks map[Attribute]int `json:"streaks"`
}

// Initial character stats, applied on creation and account reset.
const (
	InitialLevel          = 1
	InitialXP             = 0
	InitialHP             = 100
	InitialMaxHP          = 100
	InitialGold           = 0
	InitialGems           = 0
	InitialAttributeScore = 1

	// MinAttributeScore is the floor below which punitive decrements
	// never push a permanent attribute score.
	MinAttributeScore = 1

	// DeathXPPenaltyFraction of current XP is lost when HP reaches 0.
	DeathXPPenaltyFraction = 0.1
)

// NewCharacter creates a character with initial stats for a user.
func NewCharacter(id, userID, name string, now time.Time) *Character {
	scores := make(map[Attribute]int, len(Attributes))
	streaks := make(map[Attribute]int, len(Attributes))
	for _, attr := range Attributes {
		scores[attr] = InitialAttributeScore
		streaks[attr] = 0
	}
	return &Character{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Level:     InitialLevel,
		XP:        InitialXP,
		HP:        InitialHP,
		MaxHP:     InitialMaxHP,
		Gold:      InitialGold,
		Gems:      InitialGems,
		CreatedAt: now,
		UpdatedAt: now,
		Scores:    scores,
		Streaks:   streaks,
	}
}

// Clone returns a deep copy, used for optimistic-update snapshots.
func (c *Character) Clone() *Character {
	dup := *c
	dup.Scores = make(map[Attribute]int, len(c.Scores))
	for k, v := range c.Scores {
		dup.Scores[k] = v
	}
	dup.Streaks = make(map[Attribute]int, len(c.Streaks))
	for k, v := range c.Streaks {
		dup.Streaks[k] = v
	}
	return &dup
}
