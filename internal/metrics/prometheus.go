package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	decisions        *prometheus.CounterVec
	decisionLatency  *prometheus.HistogramVec
	eligibleCount    prometheus.Histogram
	conflicts        *prometheus.CounterVec
	escalations      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	calendarLatency  *prometheus.HistogramVec
	degradedResults  prometheus.Counter
	equityScore      prometheus.Gauge
	rebalanceFlagged *prometheus.CounterVec
	batchChores      *prometheus.CounterVec
	batchLatency     prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "rotation" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "rotation"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.decisions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "decisions_total",
			Help:      "Total rotation decisions by strategy and outcome.",
		}, []string{"strategy", "success"})

		p.decisionLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "decision_latency_seconds",
			Help:      "Latency of rotation decisions in seconds by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		}, []string{"strategy"})

		p.eligibleCount = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "eligible_candidates",
			Help:      "Eligible candidate counts per decision.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		})

		p.conflicts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "conflicts_total",
			Help:      "Total detected schedule conflicts by type and severity.",
		}, []string{"type", "severity"})

		p.escalations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "escalations_total",
			Help:      "Total conflict escalations by resolution outcome.",
		}, []string{"resolved"})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "availability",
			Name:      "cache_lookups_total",
			Help:      "Availability cache lookups by outcome (hit/miss).",
		}, []string{"outcome"})

		p.calendarLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "availability",
			Name:      "calendar_lookup_seconds",
			Help:      "Latency of calendar provider lookups in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms .. ~2.5s
		}, []string{"success"})

		p.degradedResults = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "availability",
			Name:      "degraded_results_total",
			Help:      "Lookups that fell back to the default availability result.",
		})

		p.equityScore = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "fairness",
			Name:      "equity_score",
			Help:      "Most recently computed family equity score.",
		})

		p.rebalanceFlagged = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "fairness",
			Name:      "rebalancing_snapshots_total",
			Help:      "Fairness snapshots by rebalancing verdict.",
		}, []string{"needed"})

		p.batchChores = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "batch",
			Name:      "chores_total",
			Help:      "Chores handled by batch rotation, by outcome.",
		}, []string{"outcome"})

		p.batchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "batch",
			Name:      "latency_seconds",
			Help:      "Latency of batch rotation runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		})

		collectors := []prometheus.Collector{
			p.decisions, p.decisionLatency, p.eligibleCount, p.conflicts,
			p.escalations, p.cacheLookups, p.calendarLatency, p.degradedResults,
			p.equityScore, p.rebalanceFlagged, p.batchChores, p.batchLatency,
		}
		for _, c := range collectors {
			// AlreadyRegisteredError is tolerated so shared registries work.
			if err := p.reg.Register(c); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					panic(err)
				}
			}
		}
	})
}

// RecordDecision records one rotation decision.
func (p *PrometheusCollector) RecordDecision(strategy string, success bool, duration float64) {
	p.ensureRegistered()
	p.decisions.WithLabelValues(strategy, strconv.FormatBool(success)).Inc()
	p.decisionLatency.WithLabelValues(strategy).Observe(duration)
}

// RecordEligibleCount records the eligible candidate count for a decision.
func (p *PrometheusCollector) RecordEligibleCount(count int) {
	p.ensureRegistered()
	p.eligibleCount.Observe(float64(count))
}

// RecordConflict records one detected schedule conflict.
func (p *PrometheusCollector) RecordConflict(conflictType, severity string) {
	p.ensureRegistered()
	p.conflicts.WithLabelValues(conflictType, severity).Inc()
}

// RecordEscalation records a conflict escalation outcome.
func (p *PrometheusCollector) RecordEscalation(resolved bool) {
	p.ensureRegistered()
	p.escalations.WithLabelValues(strconv.FormatBool(resolved)).Inc()
}

// RecordCacheLookup records an availability cache lookup outcome.
func (p *PrometheusCollector) RecordCacheLookup(hit bool) {
	p.ensureRegistered()
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	p.cacheLookups.WithLabelValues(outcome).Inc()
}

// RecordCalendarLookup records a calendar provider lookup.
func (p *PrometheusCollector) RecordCalendarLookup(duration float64, success bool) {
	p.ensureRegistered()
	p.calendarLatency.WithLabelValues(strconv.FormatBool(success)).Observe(duration)
}

// RecordDegradedResult records a degraded availability lookup.
func (p *PrometheusCollector) RecordDegradedResult() {
	p.ensureRegistered()
	p.degradedResults.Inc()
}

// RecordEquityScore sets the most recent family equity score.
func (p *PrometheusCollector) RecordEquityScore(score float64) {
	p.ensureRegistered()
	p.equityScore.Set(score)
}

// RecordRebalancingNeeded records a fairness snapshot verdict.
func (p *PrometheusCollector) RecordRebalancingNeeded(needed bool) {
	p.ensureRegistered()
	p.rebalanceFlagged.WithLabelValues(strconv.FormatBool(needed)).Inc()
}

// RecordBatch records one batch rotation run.
func (p *PrometheusCollector) RecordBatch(processed, failed int, duration float64) {
	p.ensureRegistered()
	p.batchChores.WithLabelValues("processed").Add(float64(processed))
	p.batchChores.WithLabelValues("failed").Add(float64(failed))
	p.batchLatency.Observe(duration)
}
