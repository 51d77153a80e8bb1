package types

import "errors"

// Sentinel errors for the rotation engine.
//
// These errors provide type-safe error checking using errors.Is() and
// errors.As(). Components wrap external errors with context using
// fmt.Errorf("...: %w", err).

// Engine errors - Public API errors returned by the root Engine component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMemberDirectoryRequired is returned when the member directory is nil.
	ErrMemberDirectoryRequired = errors.New("member directory is required")

	// ErrChoreStoreRequired is returned when the chore store is nil.
	ErrChoreStoreRequired = errors.New("chore store is required")

	// ErrHistoryStoreRequired is returned when the completion history store is nil.
	ErrHistoryStoreRequired = errors.New("completion history store is required")

	// ErrChoreRequired is returned when a nil chore is passed to the engine.
	ErrChoreRequired = errors.New("chore is required")

	// ErrFamilyRequired is returned when a nil family is passed to the engine.
	ErrFamilyRequired = errors.New("family is required")
)

// Strategy errors - returned by strategy implementations and the registry.
var (
	// ErrNoEligibleMembers is returned when the eligibility filter leaves
	// no candidates.
	ErrNoEligibleMembers = errors.New("no eligible members available")

	// ErrNoCandidates is returned when a strategy receives an empty
	// candidate set (a programming error in the caller).
	ErrNoCandidates = errors.New("no candidates provided")

	// ErrUnknownStrategy is returned by the registry for an unregistered
	// strategy name. The engine logs it and falls back to round robin.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrStrategyRequired is returned when registering a nil strategy.
	ErrStrategyRequired = errors.New("strategy is required")
)

// Availability errors - returned by the availability oracle internals.
// Public oracle methods never propagate these; they degrade to default
// results instead.
var (
	// ErrCalendarUnavailable indicates the calendar provider failed or
	// timed out.
	ErrCalendarUnavailable = errors.New("calendar unavailable")

	// ErrCalendarProviderRequired is returned when constructing an oracle
	// without a provider.
	ErrCalendarProviderRequired = errors.New("calendar provider is required")
)

// State store errors - returned by RotationStateStore implementations.
var (
	// ErrStateNotFound is returned when a family has no persisted rotation state.
	ErrStateNotFound = errors.New("rotation state not found")
)
