package hooks

import (
	"context"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, *types.RotationResult) error            = (*NopHooks)(nil).OnAssigned
	_ func(context.Context, string, []types.ScheduleConflict) error = (*NopHooks)(nil).OnEscalated
	_ func(context.Context, string, error) error                    = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnAssigned:  h.OnAssigned,
		OnEscalated: h.OnEscalated,
		OnError:     h.OnError,
	}
}

// OnAssigned is a no-op implementation.
func (h *NopHooks) OnAssigned(ctx context.Context, result *types.RotationResult) error {
	return nil
}

// OnEscalated is a no-op implementation.
func (h *NopHooks) OnEscalated(ctx context.Context, choreID string, conflicts []types.ScheduleConflict) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, choreID string, err error) error {
	return nil
}
