package fairness

import (
	"fmt"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// NoRebalancingNeeded is the sentinel recommendation returned when the
// family is balanced.
const NoRebalancingNeeded = "no rebalancing needed"

// Recommendation trigger thresholds.
const (
	capacityWarningLevel   = 0.9
	completionWarningLevel = 0.7
	preferenceWarningLevel = 0.5
)

// CalculateFamilyFairness derives a family-wide equity snapshot from member
// workloads.
//
// The snapshot is never persisted by the engine; callers may retain
// snapshots to feed AnalyzeTrend.
//
// Parameters:
//   - familyID: Family the workloads belong to
//   - workloads: Member workload snapshots (typically from CalculateMemberWorkloads)
//
// Returns:
//   - *types.FamilyFairnessMetrics: Equity snapshot, never nil
func (e *Engine) CalculateFamilyFairness(familyID string, workloads []types.MemberWorkload) *types.FamilyFairnessMetrics {
	m := &types.FamilyFairnessMetrics{
		FamilyID:          familyID,
		FairnessThreshold: e.equityThreshold,
		MemberWorkloads:   workloads,
		ComputedAt:        e.now(),
	}
	if len(workloads) == 0 {
		return m
	}

	scores := make([]float64, 0, len(workloads))
	weeklyPoints := make([]float64, 0, len(workloads))
	lowIndividual := false
	for _, w := range workloads {
		scores = append(scores, w.FairnessScore)
		weeklyPoints = append(weeklyPoints, float64(w.WeeklyPoints))
		if w.FairnessScore < e.fairnessFloor {
			lowIndividual = true
		}
	}

	m.EquityScore = mean(scores)
	m.WorkloadVariance = stddev(weeklyPoints)
	m.RebalancingNeeded = m.EquityScore < e.equityThreshold ||
		m.WorkloadVariance > e.varianceLimit ||
		lowIndividual

	e.metrics.RecordEquityScore(m.EquityScore)
	e.metrics.RecordRebalancingNeeded(m.RebalancingNeeded)
	e.logger.Debug("family fairness computed",
		"family", familyID,
		"equity", m.EquityScore,
		"variance", m.WorkloadVariance,
		"rebalancingNeeded", m.RebalancingNeeded,
	)

	return m
}

// GenerateRebalancingRecommendations produces textual rebalancing advice
// from an equity snapshot. When the snapshot does not flag rebalancing, the
// single NoRebalancingNeeded sentinel is returned.
func (e *Engine) GenerateRebalancingRecommendations(m *types.FamilyFairnessMetrics) []string {
	if m == nil || !m.RebalancingNeeded {
		return []string{NoRebalancingNeeded}
	}

	var recs []string

	if len(m.MemberWorkloads) >= 2 {
		highest, lowest := &m.MemberWorkloads[0], &m.MemberWorkloads[0]
		for i := range m.MemberWorkloads {
			w := &m.MemberWorkloads[i]
			if w.WeeklyPoints > highest.WeeklyPoints {
				highest = w
			}
			if w.WeeklyPoints < lowest.WeeklyPoints {
				lowest = w
			}
		}
		if highest.MemberID != lowest.MemberID {
			recs = append(recs, fmt.Sprintf(
				"shift load from %s (%d weekly points) to %s (%d weekly points)",
				highest.MemberID, highest.WeeklyPoints, lowest.MemberID, lowest.WeeklyPoints,
			))
		}
	}

	for i := range m.MemberWorkloads {
		w := &m.MemberWorkloads[i]
		if w.CapacityUtilization > capacityWarningLevel {
			recs = append(recs, fmt.Sprintf(
				"%s is above %d%% of weekly capacity, avoid new assignments",
				w.MemberID, int(capacityWarningLevel*100),
			))
		}
		if w.CompletionRate < completionWarningLevel {
			recs = append(recs, fmt.Sprintf(
				"%s completes only %d%% of assignments, consider easier or fewer chores",
				w.MemberID, int(w.CompletionRate*100),
			))
		}
		if w.PreferenceRespectRate < preferenceWarningLevel {
			recs = append(recs, fmt.Sprintf(
				"%s rarely gets preferred chores, rotate in preferred types",
				w.MemberID,
			))
		}
	}

	return recs
}

// ProjectAssignment returns a copy of workloads with one hypothetical
// assignment applied, recomputing fairness scores from the projected weekly
// aggregates. Batch rotation uses this to estimate fairness impact before
// anything is persisted.
func (e *Engine) ProjectAssignment(workloads []types.MemberWorkload, memberID string, points int) []types.MemberWorkload {
	if len(workloads) == 0 {
		return nil
	}

	projected := make([]types.MemberWorkload, len(workloads))
	copy(projected, workloads)

	for i := range projected {
		if projected[i].MemberID == memberID {
			projected[i].CurrentChores++
			projected[i].CurrentPoints += points
			projected[i].WeeklyChores++
			projected[i].WeeklyPoints += points
		}
	}

	// Recompute fairness from weekly shares; the projection approximates
	// the full-window shares with weekly aggregates.
	totalPoints, totalChores := 0, 0
	for i := range projected {
		totalPoints += projected[i].WeeklyPoints
		totalChores += projected[i].WeeklyChores
	}
	expectedShare := 1.0 / float64(len(projected))
	for i := range projected {
		pf := shareFairness(projected[i].WeeklyPoints, totalPoints, expectedShare)
		cf := shareFairness(projected[i].WeeklyChores, totalChores, expectedShare)
		projected[i].FairnessScore = types.ClampScore(0.4*pf + 0.4*cf + 0.2*projected[i].CompletionRate*100)
	}

	return projected
}

// EquityScore returns the mean fairness score of the given workloads.
func EquityScore(workloads []types.MemberWorkload) float64 {
	if len(workloads) == 0 {
		return 0
	}
	scores := make([]float64, 0, len(workloads))
	for _, w := range workloads {
		scores = append(scores, w.FairnessScore)
	}

	return mean(scores)
}
