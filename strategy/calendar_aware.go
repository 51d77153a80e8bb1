package strategy

import (
	"context"
	"sync"
	"time"

	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// calendarAwareScore is the fixed fairness score reported by this strategy;
// the availability score decides the pick, not fairness.
const calendarAwareScore = 80

// AvailabilityChecker is the subset of the availability oracle the
// calendar-aware strategy needs. availability.Oracle satisfies it.
type AvailabilityChecker interface {
	// CheckMemberAvailability returns the member's availability verdict for
	// the [target, target+duration) slot. Never returns nil.
	CheckMemberAvailability(ctx context.Context, member *types.Member, target time.Time, duration time.Duration) *types.AvailabilityResult
}

// CalendarAware picks the candidate with the highest availability score for
// the chore's due time.
type CalendarAware struct {
	checker AvailabilityChecker
	logger  types.Logger
}

var _ types.Strategy = (*CalendarAware)(nil)

// CalendarAwareOption configures a CalendarAware strategy.
type CalendarAwareOption func(*CalendarAware)

// WithCalendarLogger sets the strategy logger.
func WithCalendarLogger(logger types.Logger) CalendarAwareOption {
	return func(ca *CalendarAware) {
		if logger != nil {
			ca.logger = logger
		}
	}
}

// NewCalendarAware creates a new calendar-aware strategy.
//
// Parameters:
//   - checker: Availability oracle; a nil checker degrades every candidate
//     to the default availability result instead of failing
//   - opts: Optional configuration
//
// Returns:
//   - *CalendarAware: Initialized calendar-aware strategy
func NewCalendarAware(checker AvailabilityChecker, opts ...CalendarAwareOption) *CalendarAware {
	ca := &CalendarAware{checker: checker, logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(ca)
		}
	}

	return ca
}

// Name returns the registry key for this strategy.
func (ca *CalendarAware) Name() types.StrategyName {
	return types.StrategyCalendarAware
}

// Select queries availability for every candidate concurrently and picks
// the highest score, attaching that member's conflicts to the result.
func (ca *CalendarAware) Select(ctx context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	results := ca.lookupAll(ctx, req)

	bestIdx := 0
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[bestIdx].Score {
			bestIdx = i
		}
	}

	return &types.ScoredCandidate{
		MemberID:      req.Candidates[bestIdx].Member.ID,
		FairnessScore: calendarAwareScore,
		Conflicts:     results[bestIdx].Conflicts,
	}, nil
}

// ScoreCandidates returns each candidate's availability score.
func (ca *CalendarAware) ScoreCandidates(ctx context.Context, req *types.SelectionRequest) (map[string]float64, error) {
	if len(req.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	results := ca.lookupAll(ctx, req)
	scores := make(map[string]float64, len(results))
	for i, r := range results {
		scores[req.Candidates[i].Member.ID] = r.Score
	}

	return scores, nil
}

// lookupAll fans out one availability lookup per candidate and joins all
// results. Result order matches candidate order, so aggregation never
// depends on goroutine scheduling.
func (ca *CalendarAware) lookupAll(ctx context.Context, req *types.SelectionRequest) []*types.AvailabilityResult {
	results := make([]*types.AvailabilityResult, len(req.Candidates))
	if ca.checker == nil {
		ca.logger.Warn("calendar-aware strategy has no availability checker, using defaults")
		for i := range req.Candidates {
			results[i] = types.NewDegradedAvailability(req.Candidates[i].Member.ID)
		}

		return results
	}

	var wg sync.WaitGroup
	for i := range req.Candidates {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			member := &req.Candidates[idx].Member
			results[idx] = ca.checker.CheckMemberAvailability(ctx, member, req.Chore.DueDate, req.Chore.EstimatedDuration)
		}(i)
	}
	wg.Wait()

	return results
}
