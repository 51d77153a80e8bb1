package rotation

import (
	rand "math/rand/v2"
	"time"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	calendar   types.CalendarProvider
	hooks      *types.Hooks
	metrics    types.MetricsCollector
	logger     types.Logger
	strategies []types.Strategy
	now        func() time.Time
	rng        *rand.Rand
}

// WithCalendarProvider sets the calendar provider consumed by the
// availability oracle. Families with intelligent scheduling enabled need
// one; without a provider calendar conflicts are never detected and the
// calendar-aware strategy degrades to default availability.
//
// Parameters:
//   - provider: CalendarProvider implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	provider := myGoogleCalendarAdapter
//	engine, err := rotation.NewEngine(&cfg, members, chores, history,
//	    rotation.WithCalendarProvider(provider))
func WithCalendarProvider(provider types.CalendarProvider) Option {
	return func(o *engineOptions) {
		o.calendar = provider
	}
}

// WithHooks sets decision event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &rotation.Hooks{
//	    OnAssigned: func(ctx context.Context, result *rotation.RotationResult) error {
//	        return persistAssignment(ctx, result)
//	    },
//	}
//	engine, err := rotation.NewEngine(&cfg, members, chores, history, rotation.WithHooks(hooks))
func WithHooks(hooks *types.Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	collector := metrics.NewPrometheus(nil, "chores")
//	engine, err := rotation.NewEngine(&cfg, members, chores, history, rotation.WithMetrics(collector))
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (a slog adapter ships in internal/logging)
//
// Returns:
//   - Option: Functional option for NewEngine
func WithLogger(logger types.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithStrategy registers a custom selection strategy alongside the seven
// built-ins. A strategy registered under a built-in name replaces it.
//
// Parameters:
//   - s: Strategy implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	engine, err := rotation.NewEngine(&cfg, members, chores, history,
//	    rotation.WithStrategy(myHouseRulesStrategy))
func WithStrategy(s types.Strategy) Option {
	return func(o *engineOptions) {
		if s != nil {
			o.strategies = append(o.strategies, s)
		}
	}
}

// WithNowFunc overrides the engine clock, for deterministic tests.
func WithNowFunc(now func() time.Time) Option {
	return func(o *engineOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRandSource injects a seeded random source consumed by the
// random-fair strategy and availability retry jitter, for deterministic
// tests.
func WithRandSource(rng *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = rng
	}
}
