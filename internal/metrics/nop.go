// Package metrics provides MetricsCollector implementations.
package metrics

import "github.com/grumpylemon/family-clean-sub002/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RotationMetrics implementation

// RecordDecision discards the decision metric.
func (n *NopMetrics) RecordDecision(_ /* strategy */ string, _ /* success */ bool, _ /* duration */ float64) {
	// No-op
}

// RecordEligibleCount discards the eligible candidate count.
func (n *NopMetrics) RecordEligibleCount(_ /* count */ int) {
	// No-op
}

// RecordConflict discards the conflict metric.
func (n *NopMetrics) RecordConflict(_ /* conflictType */, _ /* severity */ string) {
	// No-op
}

// RecordEscalation discards the escalation metric.
func (n *NopMetrics) RecordEscalation(_ /* resolved */ bool) {
	// No-op
}

// AvailabilityMetrics implementation

// RecordCacheLookup discards the cache lookup metric.
func (n *NopMetrics) RecordCacheLookup(_ /* hit */ bool) {
	// No-op
}

// RecordCalendarLookup discards the calendar lookup metric.
func (n *NopMetrics) RecordCalendarLookup(_ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordDegradedResult discards the degraded result metric.
func (n *NopMetrics) RecordDegradedResult() {
	// No-op
}

// FairnessMetrics implementation

// RecordEquityScore discards the equity score metric.
func (n *NopMetrics) RecordEquityScore(_ /* score */ float64) {
	// No-op
}

// RecordRebalancingNeeded discards the rebalancing flag metric.
func (n *NopMetrics) RecordRebalancingNeeded(_ /* needed */ bool) {
	// No-op
}

// BatchMetrics implementation

// RecordBatch discards the batch metric.
func (n *NopMetrics) RecordBatch(_ /* processed */, _ /* failed */ int, _ /* duration */ float64) {
	// No-op
}
