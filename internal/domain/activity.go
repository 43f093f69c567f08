package domain

import "time"

// Habit is a repeatable activity with no daily completion cap. Positive
// actions extend the streak, negative actions (or a day with no action at
// all) break it with a penalty.
type Habit struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Title          string      `json:"title"`
	Notes          string      `json:"notes,omitempty"`
	Attributes     []Attribute `json:"attributes"`
	Difficulty     Difficulty  `json:"difficulty"`
	Streak         int         `json:"streak"`
	NegativeStreak int         `json:"negative_streak"`
	LastCompleted  *time.Time  `json:"last_completed,omitempty"`
	LastActionDate Date        `json:"last_action_date,omitzero"`
	Position       int         `json:"position"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Daily is an activity expected once per calendar day. Its streak counts
// consecutive days completed; a gap resets it to the base case of 1 on the
// next completion.
type Daily struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Title          string      `json:"title"`
	Notes          string      `json:"notes,omitempty"`
	Attributes     []Attribute `json:"attributes"`
	Difficulty     Difficulty  `json:"difficulty"`
	Streak         int         `json:"streak"`
	CompletedToday bool        `json:"completed_today"`
	LastCompleted  *time.Time  `json:"last_completed,omitempty"`
	Position       int         `json:"position"`
	CreatedAt      time.Time   `json:"created_at"`
}

// LastCompletedDate returns the local calendar date of the last completion,
// or the zero Date when the daily has never been completed.
func (d *Daily) LastCompletedDate() Date {
	if d.LastCompleted == nil {
		return Date{}
	}
	return DateOf(*d.LastCompleted)
}

// Task is a one-shot to-do. No streak state; completion toggles once.
type Task struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	Notes       string      `json:"notes,omitempty"`
	Attributes  []Attribute `json:"attributes"`
	Difficulty  Difficulty  `json:"difficulty"`
	DueDate     Date        `json:"due_date,omitzero"`
	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Position    int         `json:"position"`
	CreatedAt   time.Time   `json:"created_at"`
}
