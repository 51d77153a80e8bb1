package types

import (
	"context"
	"time"
)

// Candidate pairs an eligible member with its computed workload snapshot.
type Candidate struct {
	Member   Member
	Workload MemberWorkload
}

// SelectionRequest carries everything a strategy needs to pick an assignee.
//
// Candidates have already passed the engine's eligibility filter and is
// never empty when a strategy is invoked.
type SelectionRequest struct {
	Chore      *Chore
	Family     *Family
	Candidates []Candidate

	// Now is the decision reference time.
	Now time.Time
}

// CandidateByID returns the candidate with the given member ID, or nil.
func (r *SelectionRequest) CandidateByID(memberID string) *Candidate {
	for i := range r.Candidates {
		if r.Candidates[i].Member.ID == memberID {
			return &r.Candidates[i]
		}
	}

	return nil
}

// ScoredCandidate is a strategy's chosen assignee with its fairness score.
type ScoredCandidate struct {
	MemberID string

	// FairnessScore is the 0-100 score the strategy reports for the pick.
	FairnessScore float64

	// Conflicts carries conflicts the strategy itself detected (only the
	// calendar-aware strategy populates this).
	Conflicts []ScheduleConflict
}

// Strategy selects the next assignee for a chore.
//
// Strategies are registered in a table keyed by name so new algorithms
// extend the engine without touching its dispatch. Implementations should:
//   - Be deterministic for identical inputs (random-fair draws from an
//     injected source and is the documented exception)
//   - Handle edge cases (single candidate, missing preference data)
//   - Be stateless; per-call state arrives via SelectionRequest
type Strategy interface {
	// Name returns the registry key for this strategy.
	Name() StrategyName

	// Select picks exactly one candidate from the request.
	//
	// The request is guaranteed to carry at least one candidate; the
	// returned member ID is always drawn from that set.
	Select(ctx context.Context, req *SelectionRequest) (*ScoredCandidate, error)

	// ScoreCandidates returns a 0-100 selection score per member ID for
	// every candidate. The mixed strategy consumes these to build its
	// weighted blend.
	ScoreCandidates(ctx context.Context, req *SelectionRequest) (map[string]float64, error)
}
