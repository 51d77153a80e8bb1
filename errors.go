package rotation

import "github.com/grumpylemon/family-clean-sub002/types"

// Sentinel errors returned by the Engine, re-exported from the types
// package so callers can use errors.Is against the root package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrMemberDirectoryRequired is returned when the member directory is nil.
	ErrMemberDirectoryRequired = types.ErrMemberDirectoryRequired

	// ErrChoreStoreRequired is returned when the chore store is nil.
	ErrChoreStoreRequired = types.ErrChoreStoreRequired

	// ErrHistoryStoreRequired is returned when the completion history store is nil.
	ErrHistoryStoreRequired = types.ErrHistoryStoreRequired

	// ErrChoreRequired is returned when a nil chore is passed to the engine.
	ErrChoreRequired = types.ErrChoreRequired

	// ErrFamilyRequired is returned when a nil family is passed to the engine.
	ErrFamilyRequired = types.ErrFamilyRequired

	// ErrNoEligibleMembers is returned when the eligibility filter leaves no candidates.
	ErrNoEligibleMembers = types.ErrNoEligibleMembers

	// ErrUnknownStrategy is returned by strategy lookup for an unregistered name.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrStrategyRequired is returned when registering a nil strategy.
	ErrStrategyRequired = types.ErrStrategyRequired

	// ErrCalendarProviderRequired is returned when intelligent scheduling is
	// requested without a calendar provider.
	ErrCalendarProviderRequired = types.ErrCalendarProviderRequired

	// ErrStateNotFound is returned when a family has no persisted rotation state.
	ErrStateNotFound = types.ErrStateNotFound
)
