package strategy

import (
	"context"

	"github.com/grumpylemon/family-clean-sub002/types"
)

const (
	// roundRobinScore is reported when the rotation cursor yields a candidate.
	roundRobinScore = 85

	// roundRobinFallbackScore is reported when the cycle exhausts and the
	// first eligible candidate is used instead.
	roundRobinFallbackScore = 70
)

// RoundRobin implements cursor-based turn taking over the family rotation order.
type RoundRobin struct{}

var _ types.Strategy = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy walks forward from the family's persisted rotation cursor
// until it finds an eligible member other than the chore's current
// assignee. Advancing and persisting the cursor after an accepted
// assignment is the caller's responsibility.
//
// Returns:
//   - *RoundRobin: Initialized round-robin strategy
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Name returns the registry key for this strategy.
func (rr *RoundRobin) Name() types.StrategyName {
	return types.StrategyRoundRobin
}

// Select walks the rotation order from the cursor and picks the first
// eligible member that is not the chore's current assignee. The walk is
// bounded by the order length; if it exhausts without a fit, the first
// eligible candidate is returned with a reduced fairness score.
func (rr *RoundRobin) Select(_ context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	order, start := rotationCursor(req)
	for i := 0; i < len(order); i++ {
		id := order[(start+i)%len(order)]
		if id == req.Chore.AssignedTo {
			continue
		}
		if req.CandidateByID(id) == nil {
			continue
		}

		return &types.ScoredCandidate{MemberID: id, FairnessScore: roundRobinScore}, nil
	}

	// Cycle exhausted without a fit (every eligible member is the current
	// assignee or absent from the order).
	return &types.ScoredCandidate{
		MemberID:      req.Candidates[0].Member.ID,
		FairnessScore: roundRobinFallbackScore,
	}, nil
}

// ScoreCandidates scores candidates by cyclic distance from the cursor: the
// next member in turn scores 100 and scores fall off linearly around the
// cycle. Candidates absent from the rotation order score 50, and the
// chore's current assignee scores 10.
func (rr *RoundRobin) ScoreCandidates(_ context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	order, start := rotationCursor(req)
	position := make(map[string]int, len(order))
	for i := 0; i < len(order); i++ {
		id := order[(start+i)%len(order)]
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}

	n := len(order)
	scores := make(map[string]float64, len(req.Candidates))
	for _, c := range req.Candidates {
		id := c.Member.ID
		switch {
		case id == req.Chore.AssignedTo:
			scores[id] = 10
		default:
			pos, ok := position[id]
			if !ok {
				scores[id] = 50
				continue
			}
			scores[id] = float64(n-pos) / float64(n) * 100
		}
	}

	return scores, nil
}

// rotationCursor returns the rotation order and starting index for the
// request, substituting the candidate list when the family has no persisted
// order.
func rotationCursor(req *types.SelectionRequest) ([]string, int) {
	order := req.Family.Rotation.MemberOrder
	if len(order) == 0 {
		order = make([]string, 0, len(req.Candidates))
		for _, c := range req.Candidates {
			order = append(order, c.Member.ID)
		}
	}

	start := req.Family.Rotation.NextIndex
	if start < 0 || start >= len(order) {
		start = 0
	}

	return order, start
}
