package domain

// RewardGrant is the request a client sends to the reward authority when
// claiming an activity completion.
type RewardGrant struct {
	ActionType ActionType `json:"action_type"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Attribute  Attribute  `json:"attribute"`
	Streak     int        `json:"streak,omitempty"`
	ItemID     string     `json:"item_id,omitempty"`
}

// RewardResult is the authoritative delta returned by the reward authority.
type RewardResult struct {
	XPGained        int  `json:"xp_gained"`
	GoldGained      int  `json:"gold_gained"`
	AttributeGained int  `json:"attribute_gained,omitempty"`
	LevelUp         bool `json:"level_up,omitempty"`
	NewLevel        int  `json:"new_level,omitempty"`
}
