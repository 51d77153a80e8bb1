package fairness

import (
	"context"
	"fmt"
	"time"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// memberActivity is the raw material for one member's workload snapshot.
type memberActivity struct {
	open        []types.Chore
	completions []types.CompletionRecord
}

// CalculateMemberWorkloads computes a workload snapshot for every member
// from currently open assignments and the trailing completion window.
//
// All bounded invariants hold even with zero history: a member with no
// activity gets the centralized zero-history defaults.
//
// Parameters:
//   - ctx: Context for store lookups
//   - familyID: Family the members belong to
//   - members: Members to compute snapshots for
//
// Returns:
//   - []types.MemberWorkload: One snapshot per member, in member order
//   - error: Store lookup failure (the caller converts this to a failed result)
func (e *Engine) CalculateMemberWorkloads(ctx context.Context, familyID string, members []types.Member) ([]types.MemberWorkload, error) {
	if len(members) == 0 {
		return []types.MemberWorkload{}, nil
	}

	now := e.now()

	open, err := e.chores.ListOpenChores(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("list open chores: %w", err)
	}
	completions, err := e.history.ListCompletions(ctx, familyID, now.Add(-e.workloadWindow))
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	activity := make(map[string]*memberActivity, len(members))
	for _, m := range members {
		activity[m.ID] = &memberActivity{}
	}
	for _, c := range open {
		if a, ok := activity[c.AssignedTo]; ok {
			a.open = append(a.open, c)
		}
	}
	for _, r := range completions {
		if a, ok := activity[r.MemberID]; ok {
			a.completions = append(a.completions, r)
		}
	}

	// Family-wide share denominators over the full window.
	totalPoints, totalChores := 0, 0
	for _, a := range activity {
		for _, c := range a.open {
			totalPoints += c.Points
			totalChores++
		}
		for _, r := range a.completions {
			totalPoints += r.Points
			totalChores++
		}
	}

	expectedShare := 1.0 / float64(len(members))
	weekCutoff := now.Add(-e.weeklyWindow)

	workloads := make([]types.MemberWorkload, 0, len(members))
	for _, m := range members {
		a := activity[m.ID]
		w := e.memberWorkload(&m, a, weekCutoff)
		w.FairnessScore = e.fairnessScore(a, totalPoints, totalChores, expectedShare, w.CompletionRate)
		workloads = append(workloads, w)
	}

	return workloads, nil
}

// memberWorkload builds the per-member aggregates that do not depend on
// family-wide totals.
func (e *Engine) memberWorkload(m *types.Member, a *memberActivity, weekCutoff time.Time) types.MemberWorkload {
	w := types.NewDefaultWorkload(m.ID)

	w.CurrentChores = len(a.open)
	for _, c := range a.open {
		w.CurrentPoints += c.Points
	}

	// Weekly load covers open assignments plus the trailing week of
	// completions: both consume this week's capacity.
	w.WeeklyChores = len(a.open)
	w.WeeklyPoints = w.CurrentPoints
	for _, r := range a.completions {
		if r.CompletedAt.After(weekCutoff) {
			w.WeeklyChores++
			w.WeeklyPoints += r.Points
		}
	}

	if len(a.open) > 0 || len(a.completions) > 0 {
		w.DifficultyDistribution = make(map[types.Difficulty]int)
		for _, c := range a.open {
			w.DifficultyDistribution[c.Difficulty]++
		}
		for _, r := range a.completions {
			w.DifficultyDistribution[r.Difficulty]++
		}
	}

	if denom := len(a.completions) + len(a.open); denom > 0 {
		w.CompletionRate = float64(len(a.completions)) / float64(denom)
	}

	var total time.Duration
	timed := 0
	for _, r := range a.completions {
		if r.Duration > 0 {
			total += r.Duration
			timed++
		}
	}
	if timed > 0 {
		w.AverageCompletionTime = total / time.Duration(timed)
	}

	w.CapacityUtilization = types.Clamp01(float64(w.WeeklyChores) / float64(m.WeeklyAllowance()))
	w.PreferenceRespectRate = preferenceRespectRate(m, a.open)

	return w
}

// fairnessScore blends points share, chores share, and completion rate onto
// a 0-100 scale. With no family-wide activity both share components are
// perfect by definition.
func (e *Engine) fairnessScore(a *memberActivity, totalPoints, totalChores int, expectedShare, completionRate float64) float64 {
	memberPoints, memberChores := 0, 0
	for _, c := range a.open {
		memberPoints += c.Points
		memberChores++
	}
	for _, r := range a.completions {
		memberPoints += r.Points
		memberChores++
	}

	pointsFairness := shareFairness(memberPoints, totalPoints, expectedShare)
	choresFairness := shareFairness(memberChores, totalChores, expectedShare)

	return types.ClampScore(0.4*pointsFairness + 0.4*choresFairness + 0.2*completionRate*100)
}

// shareFairness scores how close a member's actual share is to the expected
// equal share: 100 at parity, dropping 2 points per percentage point of
// deviation, floored at 0.
func shareFairness(memberCount, totalCount int, expectedShare float64) float64 {
	if totalCount == 0 {
		return 100
	}
	actual := float64(memberCount) / float64(totalCount)
	score := 100 - 200*abs(actual-expectedShare)
	if score < 0 {
		return 0
	}

	return score
}

// preferenceRespectRate walks the member's open assignments and scores how
// well they match stated preferences, normalized to [0, 1]. With no
// preference data (or no assignments to check) the neutral default applies.
func preferenceRespectRate(m *types.Member, open []types.Chore) float64 {
	prefs := m.Preferences
	hasTypePrefs := len(prefs.PreferredChoreTypes) > 0
	hasDislikes := len(prefs.DislikedChoreTypes) > 0
	hasDifficultyPrefs := len(prefs.PreferredDifficulties) > 0

	total, checks := 0.0, 0
	for _, c := range open {
		if hasTypePrefs {
			checks++
			if m.PrefersChoreType(c.Type) {
				total++
			}
		}
		if hasDislikes {
			checks++
			if m.DislikesChoreType(c.Type) {
				total -= 0.5
			}
		}
		if hasDifficultyPrefs {
			checks++
			if m.PrefersDifficulty(c.Difficulty) {
				total += 0.5
			}
		}
	}

	if checks == 0 {
		return types.NeutralPreferenceRate
	}

	return types.Clamp01(total / float64(checks))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
