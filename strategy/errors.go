package strategy

import "github.com/grumpylemon/family-clean-sub002/types"

// Re-exported sentinel errors for convenience.
var (
	// ErrNoCandidates indicates that a strategy received an empty candidate set.
	ErrNoCandidates = types.ErrNoCandidates

	// ErrUnknownStrategy indicates a registry lookup for an unregistered name.
	ErrUnknownStrategy = types.ErrUnknownStrategy
)
