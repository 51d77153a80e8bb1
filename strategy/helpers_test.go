package strategy

import (
	"time"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// candidate builds an active member with a default workload at the given
// fairness score.
func candidate(id string, fairness float64) types.Candidate {
	wl := types.NewDefaultWorkload(id)
	wl.FairnessScore = fairness

	return types.Candidate{
		Member:   types.Member{ID: id, Active: true},
		Workload: wl,
	}
}

// newRequest builds a selection request with sensible defaults for tests
// that do not care about the chore or family specifics.
func newRequest(chore *types.Chore, family *types.Family, candidates ...types.Candidate) *types.SelectionRequest {
	if chore == nil {
		chore = &types.Chore{ID: "chore-1", FamilyID: "family-1", Type: "general"}
	}
	if family == nil {
		family = &types.Family{ID: "family-1"}
	}

	return &types.SelectionRequest{
		Chore:      chore,
		Family:     family,
		Candidates: candidates,
		Now:        time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

// rotationFamily builds a family with a persisted rotation order and cursor.
func rotationFamily(nextIndex int, order ...string) *types.Family {
	return &types.Family{
		ID: "family-1",
		Rotation: types.RotationState{
			MemberOrder: order,
			NextIndex:   nextIndex,
		},
	}
}
