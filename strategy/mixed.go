package strategy

import (
	"context"

	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// Mixed blends the per-candidate scores of every enabled strategy in the
// family configuration, weighted by the configured strategy weights. With
// no enabled strategies it falls back to plain round robin.
type Mixed struct {
	registry *Registry
	fallback *RoundRobin
	logger   types.Logger
}

var _ types.Strategy = (*Mixed)(nil)

// NewMixed creates a new mixed strategy drawing component strategies from
// the given registry.
//
// Parameters:
//   - registry: Registry the component strategies are resolved from
//   - logger: Logger for skipped/unknown component warnings (nil for none)
//
// Returns:
//   - *Mixed: Initialized mixed strategy
func NewMixed(registry *Registry, logger types.Logger) *Mixed {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Mixed{registry: registry, fallback: NewRoundRobin(), logger: logger}
}

// Name returns the registry key for this strategy.
func (mx *Mixed) Name() types.StrategyName {
	return types.StrategyMixed
}

// Select combines component scores as sum(score*weight)/sum(weight) and
// picks the candidate with the highest blend.
func (mx *Mixed) Select(ctx context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	combined, ok, err := mx.combinedScores(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mx.fallback.Select(ctx, req)
	}

	best := req.Candidates[0].Member.ID
	for _, c := range req.Candidates[1:] {
		if combined[c.Member.ID] > combined[best] {
			best = c.Member.ID
		}
	}

	return &types.ScoredCandidate{
		MemberID:      best,
		FairnessScore: types.ClampScore(combined[best]),
	}, nil
}

// ScoreCandidates returns the weighted blend per candidate, or the fallback
// round-robin scores when no component strategy is enabled.
func (mx *Mixed) ScoreCandidates(ctx context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	combined, ok, err := mx.combinedScores(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mx.fallback.ScoreCandidates(ctx, req)
	}

	return combined, nil
}

// combinedScores blends component scores. ok is false when the family has
// no enabled component with positive weight.
func (mx *Mixed) combinedScores(ctx context.Context, req *types.SelectionRequest) (map[string]float64, bool, error) {
	weighted := make(map[string]float64, len(req.Candidates))
	totalWeight := 0.0

	for _, sw := range req.Family.Strategies {
		if !sw.Enabled || sw.Weight <= 0 || sw.Name == types.StrategyMixed {
			continue
		}

		component, err := mx.registry.Get(sw.Name)
		if err != nil {
			mx.logger.Warn("mixed strategy skipping unknown component", "strategy", sw.Name)
			continue
		}

		scores, err := component.ScoreCandidates(ctx, req)
		if err != nil {
			return nil, false, err
		}

		totalWeight += sw.Weight
		for id, s := range scores {
			weighted[id] += s * sw.Weight
		}
	}

	if totalWeight <= 0 {
		return nil, false, nil
	}

	for id := range weighted {
		weighted[id] /= totalWeight
	}

	return weighted, true, nil
}
