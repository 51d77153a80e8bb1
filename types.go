package rotation

import "github.com/grumpylemon/family-clean-sub002/types"

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types and
// interfaces through type aliases. The actual definitions live in the
// `types` subpackage so that internal packages and the strategy, fairness,
// and availability subpackages can depend on them without importing the
// root `rotation` package, while users still get `rotation.Chore`,
// `rotation.Logger`, etc.
type (
	Member                 = types.Member
	MemberPreferences      = types.MemberPreferences
	Chore                  = types.Chore
	ChoreRotationConfig    = types.ChoreRotationConfig
	CompletionRecord       = types.CompletionRecord
	Family                 = types.Family
	RotationState          = types.RotationState
	StrategyName           = types.StrategyName
	StrategyWeight         = types.StrategyWeight
	MemberWorkload         = types.MemberWorkload
	FamilyFairnessMetrics  = types.FamilyFairnessMetrics
	FairnessTrend          = types.FairnessTrend
	ScheduleConflict       = types.ScheduleConflict
	CalendarEvent          = types.CalendarEvent
	AvailabilityResult     = types.AvailabilityResult
	RotationResult         = types.RotationResult
	AlternativeAssignment  = types.AlternativeAssignment
	BatchRotationOperation = types.BatchRotationOperation
	BatchRotationResult    = types.BatchRotationResult
)

// Re-export interfaces from the types package for convenience.
type (
	Strategy               = types.Strategy
	MemberDirectory        = types.MemberDirectory
	ChoreStore             = types.ChoreStore
	CompletionHistoryStore = types.CompletionHistoryStore
	CalendarProvider       = types.CalendarProvider
	RotationStateStore     = types.RotationStateStore
	MetricsCollector       = types.MetricsCollector
	Logger                 = types.Logger
	Hooks                  = types.Hooks
)

// Re-export strategy name constants from the types package.
const (
	StrategyRoundRobin      = types.StrategyRoundRobin
	StrategyWorkloadBalance = types.StrategyWorkloadBalance
	StrategySkillBased      = types.StrategySkillBased
	StrategyCalendarAware   = types.StrategyCalendarAware
	StrategyRandomFair      = types.StrategyRandomFair
	StrategyPreferenceBased = types.StrategyPreferenceBased
	StrategyMixed           = types.StrategyMixed
)
