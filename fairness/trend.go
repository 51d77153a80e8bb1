package fairness

import "github.com/grumpylemon/family-clean-sub002/types"

// trendThreshold is the equity delta (in score points) between snapshot
// halves that separates improving/declining from stable.
const trendThreshold = 5

// AnalyzeTrend classifies fairness evolution over a time-ordered series of
// equity snapshots.
//
// The series is split into first and second halves and their mean equity
// scores compared: a rise beyond the threshold is improving, a drop beyond
// it declining, anything else stable. Volatility is the standard deviation
// of the full series.
//
// Parameters:
//   - snapshots: Equity snapshots in chronological order
//
// Returns:
//   - *types.FairnessTrend: Trend summary; fewer than two snapshots yield a
//     stable trend with zero volatility
func (e *Engine) AnalyzeTrend(snapshots []types.FamilyFairnessMetrics) *types.FairnessTrend {
	trend := &types.FairnessTrend{
		Direction: types.TrendStable,
		Samples:   len(snapshots),
	}
	if len(snapshots) < 2 {
		if len(snapshots) == 1 {
			trend.FirstHalfMean = snapshots[0].EquityScore
			trend.SecondHalfMean = snapshots[0].EquityScore
		}

		return trend
	}

	scores := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		scores = append(scores, s.EquityScore)
	}

	mid := len(scores) / 2
	trend.FirstHalfMean = mean(scores[:mid])
	trend.SecondHalfMean = mean(scores[mid:])
	trend.Volatility = stddev(scores)

	switch delta := trend.SecondHalfMean - trend.FirstHalfMean; {
	case delta > trendThreshold:
		trend.Direction = types.TrendImproving
	case delta < -trendThreshold:
		trend.Direction = types.TrendDeclining
	default:
		trend.Direction = types.TrendStable
	}

	return trend
}
