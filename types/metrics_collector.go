package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from concurrent goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	RotationMetrics
	AvailabilityMetrics
	FairnessMetrics
	BatchMetrics
}

// RotationMetrics defines metrics for assignment decisions.
type RotationMetrics interface {
	// RecordDecision records one rotation decision.
	//
	// Parameters:
	//   - strategy: Strategy name used for the decision
	//   - success: true if an assignee was selected
	//   - duration: Decision latency in seconds
	RecordDecision(strategy string, success bool, duration float64)

	// RecordEligibleCount records the eligible candidate count for a decision.
	RecordEligibleCount(count int)

	// RecordConflict records one detected schedule conflict.
	//
	// Parameters:
	//   - conflictType: Conflict type ("calendar", "capacity", ...)
	//   - severity: Conflict severity ("low" ... "critical")
	RecordConflict(conflictType, severity string)

	// RecordEscalation records a conflict escalation and whether an
	// alternative candidate resolved it.
	RecordEscalation(resolved bool)
}

// AvailabilityMetrics defines metrics for calendar availability lookups.
type AvailabilityMetrics interface {
	// RecordCacheLookup records an availability cache lookup outcome.
	RecordCacheLookup(hit bool)

	// RecordCalendarLookup records a calendar provider lookup.
	//
	// Parameters:
	//   - duration: Lookup latency in seconds
	//   - success: false when the lookup failed or timed out
	RecordCalendarLookup(duration float64, success bool)

	// RecordDegradedResult records a lookup that fell back to the default
	// availability result.
	RecordDegradedResult()
}

// FairnessMetrics defines metrics for family fairness computation.
type FairnessMetrics interface {
	// RecordEquityScore sets the most recently computed family equity score.
	RecordEquityScore(score float64)

	// RecordRebalancingNeeded records whether a fairness snapshot flagged
	// the family for rebalancing.
	RecordRebalancingNeeded(needed bool)
}

// BatchMetrics defines metrics for batch rotation operations.
type BatchMetrics interface {
	// RecordBatch records one batch rotation run.
	//
	// Parameters:
	//   - processed: Number of chores successfully assigned
	//   - failed: Number of chores that could not be assigned
	//   - duration: Batch latency in seconds
	RecordBatch(processed, failed int, duration float64)
}
