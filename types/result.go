package types

// AlternativeAssignment is a fallback candidate surfaced alongside a
// rotation decision, with its own conflict check results.
type AlternativeAssignment struct {
	MemberID  string             `json:"memberId"`
	Score     float64            `json:"score"`
	Conflicts []ScheduleConflict `json:"conflicts,omitempty"`
}

// RotationResult is the outcome of a single assignee decision.
//
// Exactly one of the two shapes holds:
//   - Success true with AssignedMemberID set
//   - Success false with ErrorMessage set
//
// On failure the original candidate (if any) is still exposed through
// AlternativeAssignments so callers can offer a manual override.
type RotationResult struct {
	Success                bool                    `json:"success"`
	ChoreID                string                  `json:"choreId"`
	AssignedMemberID       string                  `json:"assignedMemberId,omitempty"`
	Strategy               StrategyName            `json:"strategy,omitempty"`
	FairnessScore          float64                 `json:"fairnessScore"`
	ConflictsDetected      []ScheduleConflict      `json:"conflictsDetected,omitempty"`
	AlternativeAssignments []AlternativeAssignment `json:"alternativeAssignments,omitempty"`
	ErrorMessage           string                  `json:"errorMessage,omitempty"`
}

// BatchRotationOperation describes a batch assignment request.
type BatchRotationOperation struct {
	// ChoreIDs lists the chores to assign, processed in order.
	ChoreIDs []string `json:"choreIds"`

	// ForceRebalance prepends rebalancing recommendations to the warnings
	// even when no individual decision requires them.
	ForceRebalance bool `json:"forceRebalance,omitempty"`

	// Strategy optionally overrides the strategy for every chore in the batch.
	Strategy StrategyName `json:"strategy,omitempty"`

	// DryRun computes decisions without firing assignment hooks.
	DryRun bool `json:"dryRun,omitempty"`
}

// BatchRotationResult aggregates the outcomes of a batch operation.
type BatchRotationResult struct {
	ProcessedChores int                        `json:"processedChores"`
	FailedChores    int                        `json:"failedChores"`
	Warnings        []string                   `json:"warnings,omitempty"`
	FairnessImpact  float64                    `json:"fairnessImpact"`
	Results         map[string]*RotationResult `json:"results"`
}
