package fairness

import (
	"time"

	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/internal/metrics"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// Default analysis windows and rebalancing thresholds.
const (
	// DefaultWorkloadWindow is the trailing completion-history window.
	DefaultWorkloadWindow = 30 * 24 * time.Hour

	// DefaultWeeklyWindow bounds the weekly load aggregates.
	DefaultWeeklyWindow = 7 * 24 * time.Hour

	// DefaultEquityThreshold is the family equity score below which
	// rebalancing is recommended.
	DefaultEquityThreshold = 75

	// DefaultVarianceThreshold is the weekly-points spread above which
	// rebalancing is recommended.
	DefaultVarianceThreshold = 25

	// DefaultMemberFairnessFloor flags rebalancing when any single member
	// scores below it.
	DefaultMemberFairnessFloor = 65
)

// Engine computes workload and equity metrics for a family.
type Engine struct {
	history types.CompletionHistoryStore
	chores  types.ChoreStore

	workloadWindow  time.Duration
	weeklyWindow    time.Duration
	equityThreshold float64
	varianceLimit   float64
	fairnessFloor   float64

	logger  types.Logger
	metrics types.MetricsCollector
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger types.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector types.MetricsCollector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// WithWindows overrides the workload and weekly analysis windows.
func WithWindows(workload, weekly time.Duration) Option {
	return func(e *Engine) {
		if workload > 0 {
			e.workloadWindow = workload
		}
		if weekly > 0 {
			e.weeklyWindow = weekly
		}
	}
}

// WithThresholds overrides the rebalancing thresholds.
//
// Parameters:
//   - equity: Minimum family equity score before rebalancing is advised
//   - variance: Maximum weekly-points spread before rebalancing is advised
//   - floor: Minimum individual fairness score before rebalancing is advised
func WithThresholds(equity, variance, floor float64) Option {
	return func(e *Engine) {
		if equity > 0 {
			e.equityThreshold = equity
		}
		if variance > 0 {
			e.varianceLimit = variance
		}
		if floor > 0 {
			e.fairnessFloor = floor
		}
	}
}

// WithNowFunc injects the clock used for window math. Tests use this to
// pin the reference time.
func WithNowFunc(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a fairness engine.
//
// Parameters:
//   - history: Completion history store (required)
//   - chores: Chore store for open assignments (required)
//   - opts: Optional configuration
//
// Returns:
//   - *Engine: Initialized engine
//   - error: ErrHistoryStoreRequired or ErrChoreStoreRequired on nil stores
func NewEngine(history types.CompletionHistoryStore, chores types.ChoreStore, opts ...Option) (*Engine, error) {
	if history == nil {
		return nil, types.ErrHistoryStoreRequired
	}
	if chores == nil {
		return nil, types.ErrChoreStoreRequired
	}

	e := &Engine{
		history:         history,
		chores:          chores,
		workloadWindow:  DefaultWorkloadWindow,
		weeklyWindow:    DefaultWeeklyWindow,
		equityThreshold: DefaultEquityThreshold,
		varianceLimit:   DefaultVarianceThreshold,
		fairnessFloor:   DefaultMemberFairnessFloor,
		logger:          logging.NewNop(),
		metrics:         metrics.NewNop(),
		now:             time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e, nil
}
