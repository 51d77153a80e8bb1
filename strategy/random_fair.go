package strategy

import (
	"context"
	rand "math/rand/v2"

	"github.com/grumpylemon/family-clean-sub002/types"
)

const (
	// minDrawWeight keeps every candidate selectable: even a fully loaded
	// member retains a small draw weight.
	minDrawWeight = 0.1

	// drawWeightBias shifts all weights up so well-balanced members are not
	// starved entirely.
	drawWeightBias = 0.2
)

// RandomFair implements a weighted random draw over candidate members.
//
// Draw weight falls as the fairness score rises, so members already scoring
// high are picked less often than a uniform draw would, but never with zero
// probability.
type RandomFair struct {
	rng *rand.Rand
}

var _ types.Strategy = (*RandomFair)(nil)

// RandomFairOption configures a RandomFair strategy.
type RandomFairOption func(*RandomFair)

// WithRandSource injects a seeded random source for deterministic tests.
func WithRandSource(rng *rand.Rand) RandomFairOption {
	return func(rf *RandomFair) {
		rf.rng = rng
	}
}

// NewRandomFair creates a new random-fair strategy.
//
// Parameters:
//   - opts: Optional configuration (WithRandSource)
//
// Returns:
//   - *RandomFair: Initialized random-fair strategy
func NewRandomFair(opts ...RandomFairOption) *RandomFair {
	rf := &RandomFair{}
	for _, opt := range opts {
		if opt != nil {
			opt(rf)
		}
	}

	return rf
}

// Name returns the registry key for this strategy.
func (rf *RandomFair) Name() types.StrategyName {
	return types.StrategyRandomFair
}

// Select draws one candidate over cumulative weights. The reported score is
// the picked member's workload fairness score.
func (rf *RandomFair) Select(_ context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	total := 0.0
	cumulative := make([]float64, len(req.Candidates))
	for i, c := range req.Candidates {
		total += drawWeight(c.Workload)
		cumulative[i] = total
	}

	r := rf.float64() * total
	for i, c := range req.Candidates {
		if r < cumulative[i] {
			return &types.ScoredCandidate{
				MemberID:      c.Member.ID,
				FairnessScore: c.Workload.FairnessScore,
			}, nil
		}
	}

	// Floating point edge: r == total.
	last := req.Candidates[len(req.Candidates)-1]

	return &types.ScoredCandidate{
		MemberID:      last.Member.ID,
		FairnessScore: last.Workload.FairnessScore,
	}, nil
}

// ScoreCandidates reports normalized draw weights on a 0-100 scale so the
// mixed blend can consume this strategy deterministically.
func (rf *RandomFair) ScoreCandidates(_ context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	maxWeight := 0.0
	for _, c := range req.Candidates {
		if w := drawWeight(c.Workload); w > maxWeight {
			maxWeight = w
		}
	}

	scores := make(map[string]float64, len(req.Candidates))
	for _, c := range req.Candidates {
		scores[c.Member.ID] = drawWeight(c.Workload) / maxWeight * 100
	}

	return scores, nil
}

// drawWeight maps a fairness score to a draw weight: higher fairness yields
// lower weight, floored at minDrawWeight.
func drawWeight(w types.MemberWorkload) float64 {
	weight := (100-w.FairnessScore)/100 + drawWeightBias
	if weight < minDrawWeight {
		return minDrawWeight
	}

	return weight
}

func (rf *RandomFair) float64() float64 {
	if rf.rng != nil {
		return rf.rng.Float64()
	}

	return rand.Float64() //nolint:gosec // non-crypto selection draw
}
