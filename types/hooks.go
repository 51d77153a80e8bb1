package types

import "context"

// Hooks defines callbacks for engine decision events.
//
// All hooks are optional and called asynchronously in background goroutines
// so they never block a rotation decision. Hook errors are logged but do
// not fail engine operations.
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (batch retries may call them multiple times)
type Hooks struct {
	// OnAssigned is called after a successful assignment decision.
	OnAssigned func(ctx context.Context, result *RotationResult) error

	// OnEscalated is called when blocking conflicts force the engine to
	// search for alternative candidates. conflicts carries the blocking
	// conflicts of the original candidate.
	OnEscalated func(ctx context.Context, choreID string, conflicts []ScheduleConflict) error

	// OnError is called when a decision fails (no eligible members,
	// dependency failure, or unresolved conflicts).
	OnError func(ctx context.Context, choreID string, err error) error
}
