package strategy

import (
	"context"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// Composite score weights for workload balancing.
const (
	capacityWeight   = 0.4
	fairnessWeight   = 0.4
	completionWeight = 0.2
)

// WorkloadBalance picks the member with the best composite of capacity
// headroom, fairness score, and completion rate.
type WorkloadBalance struct{}

var _ types.Strategy = (*WorkloadBalance)(nil)

// NewWorkloadBalance creates a new workload-balance strategy.
//
// Returns:
//   - *WorkloadBalance: Initialized workload-balance strategy
func NewWorkloadBalance() *WorkloadBalance {
	return &WorkloadBalance{}
}

// Name returns the registry key for this strategy.
func (wb *WorkloadBalance) Name() types.StrategyName {
	return types.StrategyWorkloadBalance
}

// Select picks the candidate with the highest composite score. Ties go to
// the earlier candidate so results are deterministic for identical inputs.
func (wb *WorkloadBalance) Select(_ context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	best := &req.Candidates[0]
	bestScore := compositeScore(best.Workload)
	for i := 1; i < len(req.Candidates); i++ {
		if s := compositeScore(req.Candidates[i].Workload); s > bestScore {
			best = &req.Candidates[i]
			bestScore = s
		}
	}

	return &types.ScoredCandidate{
		MemberID:      best.Member.ID,
		FairnessScore: types.ClampScore(bestScore),
	}, nil
}

// ScoreCandidates returns the composite score per candidate.
func (wb *WorkloadBalance) ScoreCandidates(_ context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	scores := make(map[string]float64, len(req.Candidates))
	for _, c := range req.Candidates {
		scores[c.Member.ID] = types.ClampScore(compositeScore(c.Workload))
	}

	return scores, nil
}

// compositeScore blends capacity headroom, fairness, and completion rate
// onto a 0-100 scale.
func compositeScore(w types.MemberWorkload) float64 {
	return capacityWeight*(1-w.CapacityUtilization)*100 +
		fairnessWeight*w.FairnessScore +
		completionWeight*w.CompletionRate*100
}
