package strategy

import (
	rand "math/rand/v2"
	"sync"

	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// Registry is a table of selection strategies keyed by name.
//
// NewRegistry pre-registers the seven built-in strategies; custom
// strategies extend the engine via Register without touching dispatch.
// Lookups for unknown names resolve to round robin so a misconfigured
// family still gets an assignee.
type Registry struct {
	mu         sync.RWMutex
	strategies map[types.StrategyName]types.Strategy
	logger     types.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	checker AvailabilityChecker
	rng     *rand.Rand
	logger  types.Logger
}

// WithAvailability injects the availability checker consumed by the
// calendar-aware strategy. Without it, calendar-aware lookups degrade to
// the default availability result.
func WithAvailability(checker AvailabilityChecker) RegistryOption {
	return func(o *registryOptions) {
		o.checker = checker
	}
}

// WithRegistryRandSource injects a seeded random source for the random-fair
// strategy, for deterministic tests.
func WithRegistryRandSource(rng *rand.Rand) RegistryOption {
	return func(o *registryOptions) {
		o.rng = rng
	}
}

// WithRegistryLogger sets the logger used by the registry and the built-in
// strategies that log.
func WithRegistryLogger(logger types.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewRegistry creates a registry with all seven built-in strategies registered.
//
// Parameters:
//   - opts: Optional configuration (availability checker, random source, logger)
//
// Returns:
//   - *Registry: Registry ready for engine dispatch
func NewRegistry(opts ...RegistryOption) *Registry {
	options := &registryOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	r := &Registry{
		strategies: make(map[types.StrategyName]types.Strategy),
		logger:     options.logger,
	}

	r.mustRegister(NewRoundRobin())
	r.mustRegister(NewWorkloadBalance())
	r.mustRegister(NewSkillBased())
	r.mustRegister(NewCalendarAware(options.checker, WithCalendarLogger(options.logger)))
	r.mustRegister(NewRandomFair(WithRandSource(options.rng)))
	r.mustRegister(NewPreferenceBased())
	r.mustRegister(NewMixed(r, options.logger))

	return r
}

// Register adds or replaces a strategy under its own name.
//
// Parameters:
//   - s: Strategy implementation
//
// Returns:
//   - error: ErrStrategyRequired when s is nil
func (r *Registry) Register(s types.Strategy) error {
	if s == nil {
		return types.ErrStrategyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s

	return nil
}

// Get returns the strategy registered under name.
//
// Returns:
//   - types.Strategy: The registered strategy
//   - error: ErrUnknownStrategy when the name is not registered
func (r *Registry) Get(name types.StrategyName) (types.Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]
	if !ok {
		return nil, ErrUnknownStrategy
	}

	return s, nil
}

// Resolve returns the strategy for name, falling back to round robin (with
// a warning) when the name is empty or unregistered. Unknown strategies are
// an input error, not a failure: assignment proceeds on the fallback.
func (r *Registry) Resolve(name types.StrategyName) types.Strategy {
	if name == "" {
		name = types.StrategyRoundRobin
	}

	s, err := r.Get(name)
	if err != nil {
		r.logger.Warn("unknown strategy, falling back to round robin", "strategy", name)
		s, _ = r.Get(types.StrategyRoundRobin)
	}

	return s
}

func (r *Registry) mustRegister(s types.Strategy) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}
