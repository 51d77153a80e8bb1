package strategy

import (
	"context"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// fullSkillMatchScore is reported when an assignee holds every required skill.
const fullSkillMatchScore = 90

// SkillBased prioritizes members holding all of a chore's required skills.
//
// With no required skills it delegates to workload balancing. When no
// member holds the full set it falls back to partial-credit scoring
// (matched/required) so assignment never hard-fails on skills.
type SkillBased struct {
	balance *WorkloadBalance
}

var _ types.Strategy = (*SkillBased)(nil)

// NewSkillBased creates a new skill-based strategy.
//
// Returns:
//   - *SkillBased: Initialized skill-based strategy
func NewSkillBased() *SkillBased {
	return &SkillBased{balance: NewWorkloadBalance()}
}

// Name returns the registry key for this strategy.
func (sb *SkillBased) Name() types.StrategyName {
	return types.StrategySkillBased
}

// Select picks the best full-skill match by workload composite, or the
// highest partial skill ratio when no candidate holds the full set.
func (sb *SkillBased) Select(ctx context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	required := req.Chore.Rotation.RequiredSkills
	if len(required) == 0 {
		return sb.balance.Select(ctx, req)
	}

	var fullMatches []types.Candidate
	for _, c := range req.Candidates {
		if c.Member.HasAllSkills(required) {
			fullMatches = append(fullMatches, c)
		}
	}

	if len(fullMatches) > 0 {
		sub := &types.SelectionRequest{
			Chore:      req.Chore,
			Family:     req.Family,
			Candidates: fullMatches,
			Now:        req.Now,
		}
		picked, err := sb.balance.Select(ctx, sub)
		if err != nil {
			return nil, err
		}
		picked.FairnessScore = fullSkillMatchScore

		return picked, nil
	}

	// Partial-credit fallback: best matched/required ratio wins.
	best := &req.Candidates[0]
	bestRatio := best.Member.SkillMatchRatio(required)
	for i := 1; i < len(req.Candidates); i++ {
		if r := req.Candidates[i].Member.SkillMatchRatio(required); r > bestRatio {
			best = &req.Candidates[i]
			bestRatio = r
		}
	}

	return &types.ScoredCandidate{
		MemberID:      best.Member.ID,
		FairnessScore: types.ClampScore(bestRatio * 100),
	}, nil
}

// ScoreCandidates scores candidates by skill match ratio on a 0-100 scale,
// delegating to workload balancing when the chore requires no skills.
func (sb *SkillBased) ScoreCandidates(ctx context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	required := req.Chore.Rotation.RequiredSkills
	if len(required) == 0 {
		return sb.balance.ScoreCandidates(ctx, req)
	}

	scores := make(map[string]float64, len(req.Candidates))
	for _, c := range req.Candidates {
		scores[c.Member.ID] = types.ClampScore(c.Member.SkillMatchRatio(required) * 100)
	}

	return scores, nil
}
