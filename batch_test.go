package rotation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/grumpylemon/family-clean-sub002/fairness"
	rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
	"github.com/grumpylemon/family-clean-sub002/types"
)

func batchFixture() *rotationtest.Fixture {
	fx := threeMemberFixture()
	for _, id := range []string{"chore-1", "chore-2", "chore-3"} {
		fx.AddChore(types.Chore{
			ID: id, FamilyID: "family-1", Type: "kitchen", Points: 5, DueDate: testDue,
		})
	}

	return fx
}

func TestProcessBatchRotation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil family", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		res := e.ProcessBatchRotation(ctx, nil, &types.BatchRotationOperation{ChoreIDs: []string{"chore-1"}})
		require.Zero(t, res.ProcessedChores)
		require.Contains(t, res.Warnings, ErrFamilyRequired.Error())
	})

	t.Run("empty operation", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		res := e.ProcessBatchRotation(ctx, rotationFamily(), &types.BatchRotationOperation{})
		require.Contains(t, res.Warnings, "batch operation has no chores")
	})

	t.Run("assigns every chore", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		op := &types.BatchRotationOperation{ChoreIDs: []string{"chore-1", "chore-2", "chore-3"}}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		require.Equal(t, 3, res.ProcessedChores)
		require.Zero(t, res.FailedChores)
		require.Empty(t, res.Warnings)
		require.Len(t, res.Results, 3)
		for _, id := range op.ChoreIDs {
			require.True(t, res.Results[id].Success)
		}
	})

	t.Run("piling chores on one member hurts projected fairness", func(t *testing.T) {
		// The batch never advances the rotation cursor, so round robin picks
		// the same member for every chore.
		e := newTestEngine(t, batchFixture())
		op := &types.BatchRotationOperation{ChoreIDs: []string{"chore-1", "chore-2", "chore-3"}}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		for _, id := range op.ChoreIDs {
			require.Equal(t, "alice", res.Results[id].AssignedMemberID)
		}
		require.Negative(t, res.FairnessImpact)
	})

	t.Run("missing chore fails without aborting the batch", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		op := &types.BatchRotationOperation{ChoreIDs: []string{"chore-1", "no-such-chore", "chore-2"}}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		require.Equal(t, 2, res.ProcessedChores)
		require.Equal(t, 1, res.FailedChores)
		require.False(t, res.Results["no-such-chore"].Success)
		require.Contains(t, res.Results["no-such-chore"].ErrorMessage, "Rotation engine error")
		require.NotEmpty(t, res.Warnings)
	})

	t.Run("strategy override applies to every chore", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		op := &types.BatchRotationOperation{
			ChoreIDs: []string{"chore-1", "chore-2"},
			Strategy: types.StrategyWorkloadBalance,
		}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		for _, id := range op.ChoreIDs {
			require.Equal(t, types.StrategyWorkloadBalance, res.Results[id].Strategy)
		}
	})

	t.Run("force rebalance reports on a balanced family", func(t *testing.T) {
		e := newTestEngine(t, batchFixture())
		op := &types.BatchRotationOperation{
			ChoreIDs:       []string{"chore-1"},
			ForceRebalance: true,
		}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		require.Contains(t, res.Warnings, fairness.NoRebalancingNeeded)
	})

	t.Run("dry run skips assignment hooks", func(t *testing.T) {
		var hookCalls atomic.Int64
		e := newTestEngine(t, batchFixture(), WithHooks(&types.Hooks{
			OnAssigned: func(context.Context, *types.RotationResult) error {
				hookCalls.Add(1)
				return nil
			},
		}))
		op := &types.BatchRotationOperation{
			ChoreIDs: []string{"chore-1", "chore-2"},
			DryRun:   true,
		}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		require.Equal(t, 2, res.ProcessedChores)

		time.Sleep(100 * time.Millisecond)
		require.Zero(t, hookCalls.Load())
	})

	t.Run("live run fires assignment hooks", func(t *testing.T) {
		assigned := make(chan string, 2)
		e := newTestEngine(t, batchFixture(), WithHooks(&types.Hooks{
			OnAssigned: func(_ context.Context, r *types.RotationResult) error {
				assigned <- r.ChoreID
				return nil
			},
		}))
		op := &types.BatchRotationOperation{ChoreIDs: []string{"chore-1", "chore-2"}}

		res := e.ProcessBatchRotation(ctx, rotationFamily(), op)
		require.Equal(t, 2, res.ProcessedChores)

		seen := map[string]bool{}
		for i := 0; i < 2; i++ {
			select {
			case id := <-assigned:
				seen[id] = true
			case <-time.After(time.Second):
				t.Fatal("OnAssigned hook was not called for every chore")
			}
		}
		require.True(t, seen["chore-1"] && seen["chore-2"])
	})
}
