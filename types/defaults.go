package types

import "time"

// Centralized defaults shared by the fairness engine, the strategies, and
// the availability oracle. Scoring code must use these constructors instead
// of inlining ad-hoc fallback values so defaults stay consistent and
// testable in isolation.

const (
	// DefaultCompletionTime substitutes for a member's average completion
	// time when no history exists.
	DefaultCompletionTime = 30 * time.Minute

	// DefaultWeeklyChoreAllowance substitutes for MaxChoresPerWeek when a
	// member has not configured one.
	DefaultWeeklyChoreAllowance = 10

	// DefaultDailyChoreLimit substitutes for MaxChoresPerDay when a member
	// has not configured one.
	DefaultDailyChoreLimit = 3

	// NeutralPreferenceRate is the preference respect rate reported when a
	// member has no preference data to check against.
	NeutralPreferenceRate = 0.8

	// DefaultAvailabilityScore is reported when a calendar lookup degrades.
	DefaultAvailabilityScore = 70
)

// WeeklyAllowance returns the member's weekly chore cap, substituting the
// default allowance when unset.
func (m *Member) WeeklyAllowance() int {
	if m.Preferences.MaxChoresPerWeek > 0 {
		return m.Preferences.MaxChoresPerWeek
	}

	return DefaultWeeklyChoreAllowance
}

// DailyLimit returns the member's daily chore cap, substituting the default
// limit when unset.
func (m *Member) DailyLimit() int {
	if m.Preferences.MaxChoresPerDay > 0 {
		return m.Preferences.MaxChoresPerDay
	}

	return DefaultDailyChoreLimit
}

// NewDefaultWorkload returns the zero-history workload snapshot for a
// member. All bounded invariants hold: a member with no assignments and no
// history is perfectly balanced, fully available, and has a perfect
// completion rate by definition.
func NewDefaultWorkload(memberID string) MemberWorkload {
	return MemberWorkload{
		MemberID:              memberID,
		CompletionRate:        1.0,
		AverageCompletionTime: DefaultCompletionTime,
		FairnessScore:         100,
		CapacityUtilization:   0,
		PreferenceRespectRate: NeutralPreferenceRate,
	}
}

// NewDegradedAvailability returns the non-fatal default availability result
// used when a calendar lookup fails or times out. Assignment proceeds with
// a single low-severity, overridable warning conflict.
func NewDegradedAvailability(memberID string) *AvailabilityResult {
	return &AvailabilityResult{
		MemberID: memberID,
		Score:    DefaultAvailabilityScore,
		Conflicts: []ScheduleConflict{{
			Type:        ConflictAvailability,
			Severity:    SeverityLow,
			Description: "calendar unavailable, assuming default availability",
			CanOverride: true,
		}},
		Reasoning: []string{"calendar lookup failed; using default availability"},
		Degraded:  true,
	}
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

// ClampScore clamps v to the [0, 100] score range.
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}

	return v
}
