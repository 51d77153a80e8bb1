package availability

import (
	"context"
	"sync"
	"time"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// DefaultGroupFlexibility is the scan window for FindOptimalGroupTime when
// the caller passes no flexibility.
const DefaultGroupFlexibility = 4 * time.Hour

// CheckMultipleMemberAvailability evaluates every member concurrently for
// the same slot and joins all results.
//
// Each lookup runs in its own goroutine with an independent timeout; a
// failed or timed-out lookup degrades to the default result rather than
// aborting the batch. Aggregation is order-independent.
//
// Returns:
//   - map[string]*types.AvailabilityResult: Verdict per member ID
func (o *Oracle) CheckMultipleMemberAvailability(ctx context.Context, members []types.Member, target time.Time, duration time.Duration) map[string]*types.AvailabilityResult {
	results := make([]*types.AvailabilityResult, len(members))

	var wg sync.WaitGroup
	for i := range members {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = o.CheckMemberAvailability(ctx, &members[idx], target, duration)
		}(i)
	}
	wg.Wait()

	byMember := make(map[string]*types.AvailabilityResult, len(members))
	for _, r := range results {
		byMember[r.MemberID] = r
	}

	return byMember
}

// GroupSlot is one evaluated group time with its mean member score.
type GroupSlot struct {
	Start time.Time `json:"start"`

	// MeanScore averages every member's availability score; the mean is
	// commutative so join order never affects it.
	MeanScore float64 `json:"meanScore"`
}

// FindOptimalGroupTime scans hourly offsets within the flexibility window
// and returns the slot maximizing the mean member availability score.
//
// Parameters:
//   - ctx: Context for the underlying lookups
//   - members: Members that must attend
//   - earliest: First slot start to consider
//   - duration: Slot length
//   - flexibility: How far past earliest to scan; non-positive falls back
//     to DefaultGroupFlexibility
//
// Returns:
//   - GroupSlot: Best slot found; with no members the earliest slot is
//     returned with a zero score
func (o *Oracle) FindOptimalGroupTime(ctx context.Context, members []types.Member, earliest time.Time, duration, flexibility time.Duration) GroupSlot {
	if flexibility <= 0 {
		flexibility = DefaultGroupFlexibility
	}

	best := GroupSlot{Start: earliest}
	if len(members) == 0 {
		return best
	}

	hours := int(flexibility / time.Hour)
	for offset := 0; offset <= hours; offset++ {
		slot := earliest.Add(time.Duration(offset) * time.Hour)
		results := o.CheckMultipleMemberAvailability(ctx, members, slot, duration)

		sum := 0.0
		for _, r := range results {
			sum += r.Score
		}
		mean := sum / float64(len(results))

		if offset == 0 || mean > best.MeanScore {
			best = GroupSlot{Start: slot, MeanScore: mean}
		}
	}

	return best
}
