package rotation

import (
	"context"
	"fmt"

	"github.com/grumpylemon/family-clean-sub002/fairness"
	"github.com/grumpylemon/family-clean-sub002/internal/hooks"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// ProcessBatchRotation assigns a batch of chores in one pass.
//
// Chores are processed in the order given. Each chore goes through the full
// decision pipeline; failures are collected as warnings without aborting
// the rest of the batch. FairnessImpact reports the projected equity score
// delta of applying every successful assignment, computed by carrying the
// projected workloads forward between decisions.
//
// Operation flags:
//   - DryRun computes decisions without firing assignment hooks
//   - ForceRebalance prepends rebalancing recommendations to the warnings
//   - Strategy overrides the strategy for every chore in the batch
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - family: Family rotation configuration
//   - op: Batch operation describing chores and flags
//
// Returns:
//   - *types.BatchRotationResult: Aggregated outcome, never nil
func (e *Engine) ProcessBatchRotation(ctx context.Context, family *types.Family, op *types.BatchRotationOperation) *types.BatchRotationResult {
	start := e.now()
	result := &types.BatchRotationResult{
		Results: make(map[string]*types.RotationResult),
	}

	if family == nil {
		result.Warnings = append(result.Warnings, ErrFamilyRequired.Error())
		return result
	}
	if op == nil || len(op.ChoreIDs) == 0 {
		result.Warnings = append(result.Warnings, "batch operation has no chores")
		return result
	}

	// Dry runs decide without side effects: hooks are swapped for no-ops on
	// a shallow engine copy.
	target := e
	if op.DryRun {
		shadow := *e
		nop := hooks.NewNop()
		shadow.hooks = &nop
		target = &shadow
	}

	members, err := e.members.ListActiveMembers(ctx, family.ID)
	if err != nil {
		result.Warnings = append(result.Warnings, "member lookup failed: "+err.Error())
		return result
	}

	workloads, err := e.fairness.CalculateMemberWorkloads(ctx, family.ID, members)
	if err != nil {
		result.Warnings = append(result.Warnings, "workload computation failed: "+err.Error())
		return result
	}

	if op.ForceRebalance {
		metrics := e.fairness.CalculateFamilyFairness(family.ID, workloads)
		result.Warnings = append(result.Warnings, e.fairness.GenerateRebalancingRecommendations(metrics)...)
	}

	equityBefore := fairness.EquityScore(workloads)
	projected := workloads

	for _, choreID := range op.ChoreIDs {
		chore, err := e.chores.GetChore(ctx, family.ID, choreID)
		if err != nil {
			result.FailedChores++
			result.Warnings = append(result.Warnings, fmt.Sprintf("chore %s: lookup failed: %v", choreID, err))
			result.Results[choreID] = &types.RotationResult{
				Success:      false,
				ChoreID:      choreID,
				ErrorMessage: "Rotation engine error: " + err.Error(),
			}

			continue
		}

		if op.Strategy != "" {
			override := *chore
			override.Rotation.Strategy = op.Strategy
			chore = &override
		}

		decision := target.DetermineNextAssignee(ctx, chore, family)
		result.Results[choreID] = decision

		if decision.Success {
			result.ProcessedChores++
			projected = e.fairness.ProjectAssignment(projected, decision.AssignedMemberID, chore.Points)
		} else {
			result.FailedChores++
			result.Warnings = append(result.Warnings, fmt.Sprintf("chore %s: %s", choreID, decision.ErrorMessage))
		}
	}

	if result.ProcessedChores > 0 && len(projected) > 0 {
		result.FairnessImpact = fairness.EquityScore(projected) - equityBefore
	}

	e.metrics.RecordBatch(result.ProcessedChores, result.FailedChores, e.now().Sub(start).Seconds())
	e.logger.Info("batch rotation completed",
		"familyID", family.ID,
		"processed", result.ProcessedChores,
		"failed", result.FailedChores,
		"dryRun", op.DryRun,
	)

	return result
}
