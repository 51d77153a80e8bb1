package types

import "time"

// MemberWorkload is a computed, ephemeral snapshot of one member's load.
//
// Workloads are recomputed on every call from a trailing window of
// completion history plus currently open assignments. They are valid only
// for the instant they were computed; callers applying decisions derived
// from a snapshot must guard chore writes with optimistic concurrency.
//
// Invariants (hold even with zero history):
//   - 0 <= FairnessScore <= 100
//   - 0 <= CapacityUtilization <= 1
//   - 0 <= CompletionRate <= 1
//   - 0 <= PreferenceRespectRate <= 1
type MemberWorkload struct {
	MemberID string `json:"memberId"`

	// CurrentPoints and CurrentChores cover currently open assignments.
	CurrentPoints int `json:"currentPoints"`
	CurrentChores int `json:"currentChores"`

	// WeeklyPoints and WeeklyChores cover the trailing seven days of
	// completions plus open assignments.
	WeeklyPoints int `json:"weeklyPoints"`
	WeeklyChores int `json:"weeklyChores"`

	// DifficultyDistribution counts chores by difficulty across the window.
	DifficultyDistribution map[Difficulty]int `json:"difficultyDistribution,omitempty"`

	// CompletionRate is completed / (completed + currently assigned).
	CompletionRate float64 `json:"completionRate"`

	// AverageCompletionTime defaults to 30 minutes absent history.
	AverageCompletionTime time.Duration `json:"averageCompletionTime"`

	// FairnessScore estimates how equitably this member is loaded relative
	// to family peers, 0 (overloaded) to 100 (underloaded or balanced).
	FairnessScore float64 `json:"fairnessScore"`

	// CapacityUtilization is the consumed fraction of the member's weekly
	// chore allowance.
	CapacityUtilization float64 `json:"capacityUtilization"`

	// PreferenceRespectRate measures how well current assignments match the
	// member's stated preferences.
	PreferenceRespectRate float64 `json:"preferenceRespectRate"`
}

// FamilyFairnessMetrics is a family-wide equity snapshot.
//
// Derived on demand and never persisted by the engine; callers may retain
// snapshots to feed trend analysis.
type FamilyFairnessMetrics struct {
	FamilyID          string           `json:"familyId"`
	EquityScore       float64          `json:"equityScore"`
	WorkloadVariance  float64          `json:"workloadVariance"`
	RebalancingNeeded bool             `json:"rebalancingNeeded"`
	FairnessThreshold float64          `json:"fairnessThreshold"`
	MemberWorkloads   []MemberWorkload `json:"memberWorkloads"`
	ComputedAt        time.Time        `json:"computedAt"`
}

// TrendDirection classifies fairness evolution across a snapshot series.
type TrendDirection string

// Trend directions reported by fairness trend analysis.
const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// FairnessTrend summarizes equity evolution over a time-ordered series of
// fairness snapshots.
type FairnessTrend struct {
	Direction      TrendDirection `json:"direction"`
	FirstHalfMean  float64        `json:"firstHalfMean"`
	SecondHalfMean float64        `json:"secondHalfMean"`
	Volatility     float64        `json:"volatility"`
	Samples        int            `json:"samples"`
}
