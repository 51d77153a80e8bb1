package types

import "time"

// Difficulty classifies how demanding a chore is.
type Difficulty string

// Difficulty levels in ascending order of effort.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PriorityLevel classifies how urgently a chore needs an assignee.
type PriorityLevel string

// Priority levels. PriorityUrgent relaxes the avoid-member exclusion
// during eligibility filtering.
const (
	PriorityLow    PriorityLevel = "low"
	PriorityNormal PriorityLevel = "normal"
	PriorityHigh   PriorityLevel = "high"
	PriorityUrgent PriorityLevel = "urgent"
)

// ChoreRotationConfig controls how an assignee is chosen for one chore.
//
// All fields are optional. An empty Strategy falls back to the family
// default, and an empty EligibleMembers list means every active member
// is a candidate.
type ChoreRotationConfig struct {
	// Strategy overrides the family default selection strategy.
	Strategy StrategyName `json:"strategy,omitempty"`

	// RequiredSkills lists certifications an assignee must hold in full.
	RequiredSkills []string `json:"requiredSkills,omitempty"`

	// EligibleMembers is an explicit allow-list of member IDs.
	EligibleMembers []string `json:"eligibleMembers,omitempty"`

	// AvoidMembers lists member IDs excluded from assignment unless the
	// chore priority is urgent.
	AvoidMembers []string `json:"avoidMembers,omitempty"`

	// PreferredMembers lists member IDs favored by the preference-based
	// strategy.
	PreferredMembers []string `json:"preferredMembers,omitempty"`

	// Priority is the chore's priority level (defaults to normal).
	Priority PriorityLevel `json:"priority,omitempty"`
}

// Chore is a recurring task in need of an assignee.
//
// Chores persist outside this subsystem and are read-only to the engine.
type Chore struct {
	ID                string              `json:"id"`
	FamilyID          string              `json:"familyId"`
	Title             string              `json:"title,omitempty"`
	Type              string              `json:"type"`
	Difficulty        Difficulty          `json:"difficulty"`
	Points            int                 `json:"points"`
	DueDate           time.Time           `json:"dueDate"`
	EstimatedDuration time.Duration       `json:"estimatedDuration"`
	AssignedTo        string              `json:"assignedTo,omitempty"`
	Rotation          ChoreRotationConfig `json:"rotation"`
}

// CompletionRecord is one completed chore in a member's history.
type CompletionRecord struct {
	MemberID    string        `json:"memberId"`
	ChoreID     string        `json:"choreId"`
	ChoreType   string        `json:"choreType"`
	Difficulty  Difficulty    `json:"difficulty"`
	Points      int           `json:"points"`
	CompletedAt time.Time     `json:"completedAt"`
	Duration    time.Duration `json:"duration,omitempty"`
}
