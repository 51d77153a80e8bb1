package strategy

import (
	"context"
	"slices"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// Preference component adjustments. The component starts neutral at 0.5 and
// is clamped to [0, 1] after all adjustments.
const (
	preferenceNeutral        = 0.5
	preferredTypeBonus       = 0.3
	preferredDifficultyBonus = 0.2
	dislikedTypePenalty      = 0.4
	chorePreferredBonus      = 0.4
	choreAvoidPenalty        = 0.5
)

// Default blend weights when the family configures none.
const (
	defaultPreferenceWeight = 0.6
	defaultFairnessWeight   = 0.4
)

// PreferenceBased blends how well a chore fits a member's stated
// preferences against the member's fairness score, using family-configured
// weights.
type PreferenceBased struct{}

var _ types.Strategy = (*PreferenceBased)(nil)

// NewPreferenceBased creates a new preference-based strategy.
//
// Returns:
//   - *PreferenceBased: Initialized preference-based strategy
func NewPreferenceBased() *PreferenceBased {
	return &PreferenceBased{}
}

// Name returns the registry key for this strategy.
func (pb *PreferenceBased) Name() types.StrategyName {
	return types.StrategyPreferenceBased
}

// Select picks the candidate with the highest blended score. Ties go to the
// earlier candidate.
func (pb *PreferenceBased) Select(_ context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	best := &req.Candidates[0]
	bestScore := blendedScore(best, req)
	for i := 1; i < len(req.Candidates); i++ {
		if s := blendedScore(&req.Candidates[i], req); s > bestScore {
			best = &req.Candidates[i]
			bestScore = s
		}
	}

	return &types.ScoredCandidate{
		MemberID:      best.Member.ID,
		FairnessScore: types.ClampScore(bestScore * 100),
	}, nil
}

// ScoreCandidates returns each candidate's blended score on a 0-100 scale.
func (pb *PreferenceBased) ScoreCandidates(_ context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	scores := make(map[string]float64, len(req.Candidates))
	for i := range req.Candidates {
		scores[req.Candidates[i].Member.ID] = types.ClampScore(blendedScore(&req.Candidates[i], req) * 100)
	}

	return scores, nil
}

// blendedScore combines the preference component with the fairness score
// using the family's configured weights, on a [0, 1] scale.
func blendedScore(c *types.Candidate, req *types.SelectionRequest) float64 {
	prefWeight, fairWeight := req.Family.PreferenceWeight, req.Family.FairnessWeight
	if prefWeight <= 0 && fairWeight <= 0 {
		prefWeight, fairWeight = defaultPreferenceWeight, defaultFairnessWeight
	}

	return preferenceComponent(c, req.Chore)*prefWeight + (c.Workload.FairnessScore/100)*fairWeight
}

// preferenceComponent scores how well the chore fits the member's stated
// preferences and the chore's own member hints, clamped to [0, 1].
func preferenceComponent(c *types.Candidate, chore *types.Chore) float64 {
	score := preferenceNeutral

	if c.Member.PrefersChoreType(chore.Type) {
		score += preferredTypeBonus
	}
	if c.Member.PrefersDifficulty(chore.Difficulty) {
		score += preferredDifficultyBonus
	}
	if c.Member.DislikesChoreType(chore.Type) {
		score -= dislikedTypePenalty
	}
	if slices.Contains(chore.Rotation.PreferredMembers, c.Member.ID) {
		score += chorePreferredBonus
	}
	if slices.Contains(chore.Rotation.AvoidMembers, c.Member.ID) {
		score -= choreAvoidPenalty
	}

	return types.Clamp01(score)
}
