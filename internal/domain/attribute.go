package domain

// Attribute is one of the five persistent character stats raised via
// streak promotion.
type Attribute string

const (
	AttributeStrength     Attribute = "strength"
	AttributeHealth       Attribute = "health"
	AttributeIntelligence Attribute = "intelligence"
	AttributeCreativity   Attribute = "creativity"
	AttributeDiscipline   Attribute = "discipline"
)

// Attributes lists every attribute in display order.
var Attributes = []Attribute{
	AttributeStrength,
	AttributeHealth,
	AttributeIntelligence,
	AttributeCreativity,
	AttributeDiscipline,
}

// IsValid reports whether a is one of the five known attributes.
func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeHealth, AttributeIntelligence,
		AttributeCreativity, AttributeDiscipline:
		return true
	}
	return false
}

// Difficulty is the easy/medium/hard tier controlling task and daily XP
// magnitude. Habits use the positive/negative sign values instead.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyHard     Difficulty = "hard"
	DifficultyPositive Difficulty = "positive"
	DifficultyNegative Difficulty = "negative"
)

// IsValid reports whether d is a known difficulty tier or habit sign.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard,
		DifficultyPositive, DifficultyNegative:
		return true
	}
	return false
}

// IsTier reports whether d is one of the easy/medium/hard tiers.
func (d Difficulty) IsTier() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ActionType identifies which activity store a reward claim refers to.
type ActionType string

const (
	ActionHabit ActionType = "habit"
	ActionDaily ActionType = "daily"
	ActionTask  ActionType = "task"
)

// IsValid reports whether t is a known action type.
func (t ActionType) IsValid() bool {
	switch t {
	case ActionHabit, ActionDaily, ActionTask:
		return true
	}
	return false
}
