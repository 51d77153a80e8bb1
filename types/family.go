package types

// StrategyName identifies a registered selection strategy.
type StrategyName string

// Built-in strategy names.
const (
	StrategyRoundRobin      StrategyName = "round_robin"
	StrategyWorkloadBalance StrategyName = "workload_balance"
	StrategySkillBased      StrategyName = "skill_based"
	StrategyCalendarAware   StrategyName = "calendar_aware"
	StrategyRandomFair      StrategyName = "random_fair"
	StrategyPreferenceBased StrategyName = "preference_based"
	StrategyMixed           StrategyName = "mixed"
)

// StrategyWeight enables one strategy inside the mixed blend.
type StrategyWeight struct {
	Name    StrategyName `json:"name"`
	Weight  float64      `json:"weight"`
	Enabled bool         `json:"enabled"`
}

// RotationState is the round-robin cursor for a family.
//
// The engine reads this state but never advances it; persisting the next
// index after an accepted assignment is the caller's responsibility
// (optionally via store/natskv).
type RotationState struct {
	// MemberOrder is the cyclic rotation sequence of member IDs.
	MemberOrder []string `json:"memberRotationOrder"`

	// NextIndex points at the next member in MemberOrder to consider.
	NextIndex int `json:"nextFamilyChoreAssigneeIndex"`
}

// Family carries the family-level rotation configuration.
//
// Families persist outside this subsystem and are read-only to the engine.
type Family struct {
	ID string `json:"id"`

	// DefaultStrategy is used when a chore does not override the strategy.
	DefaultStrategy StrategyName `json:"defaultStrategy,omitempty"`

	// EnableIntelligentScheduling turns on calendar conflict detection.
	// When false the engine never consults the availability oracle.
	EnableIntelligentScheduling bool `json:"enableIntelligentScheduling"`

	// PreferenceWeight and FairnessWeight blend preference fit against
	// fairness in the preference-based strategy. Zero values fall back to
	// the configured defaults.
	PreferenceWeight float64 `json:"preferenceWeight,omitempty"`
	FairnessWeight   float64 `json:"fairnessWeight,omitempty"`

	// Strategies configures the mixed strategy blend.
	Strategies []StrategyWeight `json:"strategies,omitempty"`

	// Rotation is the round-robin cursor state.
	Rotation RotationState `json:"rotation"`
}
