package rotation

import (
	"fmt"
	"time"
)

// FairnessConfig controls the thresholds of the fairness engine.
type FairnessConfig struct {
	// EquityThreshold is the family-wide equity score (0-100) below which
	// rebalancing is flagged.
	EquityThreshold float64 `yaml:"equityThreshold"`

	// VarianceLimit is the weekly-points standard deviation above which
	// rebalancing is flagged.
	VarianceLimit float64 `yaml:"varianceLimit"`

	// IndividualFloor is the per-member fairness score (0-100) below which
	// rebalancing is flagged regardless of family-wide equity.
	IndividualFloor float64 `yaml:"individualFloor"`

	// WorkloadWindow is the trailing completion-history window feeding
	// workload snapshots.
	WorkloadWindow time.Duration `yaml:"workloadWindow"`

	// WeeklyWindow is the trailing window feeding weekly load counters.
	WeeklyWindow time.Duration `yaml:"weeklyWindow"`
}

// AvailabilityConfig controls calendar lookup behavior.
type AvailabilityConfig struct {
	// CacheTTL is how long cached calendar events stay valid.
	CacheTTL time.Duration `yaml:"cacheTtl"`

	// LookupTimeout bounds a single calendar provider call. A timed-out
	// lookup retries once with jittered backoff, then degrades to the
	// default availability result.
	LookupTimeout time.Duration `yaml:"lookupTimeout"`
}

// Config is the configuration for the rotation Engine.
//
// All duration fields accept standard Go duration strings like "30s", "5m", "1h".
type Config struct {
	// MaxAlternatives caps how many alternative candidates a decision
	// surfaces when conflicts force an escalation.
	MaxAlternatives int `yaml:"maxAlternatives"`

	// Fairness controls workload windows and rebalancing thresholds.
	Fairness FairnessConfig `yaml:"fairness"`

	// Availability controls calendar lookup caching and timeouts.
	Availability AvailabilityConfig `yaml:"availability"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		MaxAlternatives: 3,
		Fairness: FairnessConfig{
			EquityThreshold: 75,
			VarianceLimit:   25,
			IndividualFloor: 65,
			WorkloadWindow:  30 * 24 * time.Hour,
			WeeklyWindow:    7 * 24 * time.Hour,
		},
		Availability: AvailabilityConfig{
			CacheTTL:      15 * time.Minute,
			LookupTimeout: 2 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.MaxAlternatives == 0 {
		cfg.MaxAlternatives = defaults.MaxAlternatives
	}
	if cfg.Fairness.EquityThreshold == 0 {
		cfg.Fairness.EquityThreshold = defaults.Fairness.EquityThreshold
	}
	if cfg.Fairness.VarianceLimit == 0 {
		cfg.Fairness.VarianceLimit = defaults.Fairness.VarianceLimit
	}
	if cfg.Fairness.IndividualFloor == 0 {
		cfg.Fairness.IndividualFloor = defaults.Fairness.IndividualFloor
	}
	if cfg.Fairness.WorkloadWindow == 0 {
		cfg.Fairness.WorkloadWindow = defaults.Fairness.WorkloadWindow
	}
	if cfg.Fairness.WeeklyWindow == 0 {
		cfg.Fairness.WeeklyWindow = defaults.Fairness.WeeklyWindow
	}
	if cfg.Availability.CacheTTL == 0 {
		cfg.Availability.CacheTTL = defaults.Availability.CacheTTL
	}
	if cfg.Availability.LookupTimeout == 0 {
		cfg.Availability.LookupTimeout = defaults.Availability.LookupTimeout
	}
}

// Validate checks configuration constraints and returns error for invalid values.
//
// Hard Validation Rules:
//   - MaxAlternatives >= 1 (escalation needs somewhere to go)
//   - 0 < EquityThreshold <= 100, 0 < IndividualFloor <= 100
//   - IndividualFloor <= EquityThreshold (the floor is the stricter bound)
//   - VarianceLimit > 0
//   - WorkloadWindow >= WeeklyWindow (weekly stats come from the same history)
//   - CacheTTL > 0, LookupTimeout > 0
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.MaxAlternatives < 1 {
		return fmt.Errorf("MaxAlternatives must be >= 1, got %d", cfg.MaxAlternatives)
	}

	if cfg.Fairness.EquityThreshold <= 0 || cfg.Fairness.EquityThreshold > 100 {
		return fmt.Errorf("EquityThreshold must be in (0, 100], got %v", cfg.Fairness.EquityThreshold)
	}

	if cfg.Fairness.IndividualFloor <= 0 || cfg.Fairness.IndividualFloor > 100 {
		return fmt.Errorf("IndividualFloor must be in (0, 100], got %v", cfg.Fairness.IndividualFloor)
	}

	if cfg.Fairness.IndividualFloor > cfg.Fairness.EquityThreshold {
		return fmt.Errorf(
			"IndividualFloor (%v) must be <= EquityThreshold (%v)",
			cfg.Fairness.IndividualFloor, cfg.Fairness.EquityThreshold,
		)
	}

	if cfg.Fairness.VarianceLimit <= 0 {
		return fmt.Errorf("VarianceLimit must be > 0, got %v", cfg.Fairness.VarianceLimit)
	}

	if cfg.Fairness.WorkloadWindow < cfg.Fairness.WeeklyWindow {
		return fmt.Errorf(
			"WorkloadWindow (%v) must be >= WeeklyWindow (%v); weekly stats are derived from the workload history",
			cfg.Fairness.WorkloadWindow, cfg.Fairness.WeeklyWindow,
		)
	}

	if cfg.Availability.CacheTTL <= 0 {
		return fmt.Errorf("CacheTTL must be > 0, got %v", cfg.Availability.CacheTTL)
	}

	if cfg.Availability.LookupTimeout <= 0 {
		return fmt.Errorf("LookupTimeout must be > 0, got %v", cfg.Availability.LookupTimeout)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for non-recommended values.
//
// This is called after Validate() in NewEngine() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	// Warn if the cache TTL is short enough to hammer the calendar provider
	if cfg.Availability.CacheTTL < time.Minute {
		logger.Warn(
			"Availability CacheTTL is very short, calendar provider will be queried frequently",
			"cacheTTL", cfg.Availability.CacheTTL,
			"recommended", "15m",
		)
	}

	// Warn if lookups may stall decisions
	if cfg.Availability.LookupTimeout > 5*time.Second {
		logger.Warn(
			"Availability LookupTimeout is long, slow calendars will delay decisions",
			"lookupTimeout", cfg.Availability.LookupTimeout,
			"recommended", "2s",
		)
	}

	// Warn if the workload window is too short for meaningful trends
	if cfg.Fairness.WorkloadWindow < 14*24*time.Hour {
		logger.Warn(
			"Fairness WorkloadWindow is short, fairness scores will be noisy",
			"workloadWindow", cfg.Fairness.WorkloadWindow,
			"recommended", "720h (30 days)",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are much faster than production defaults to enable rapid
// iteration without sacrificing coverage. Use DefaultConfig() for
// production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := rotation.TestConfig()
//	engine, err := rotation.NewEngine(&cfg, members, chores, history)
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.Availability.CacheTTL = 100 * time.Millisecond
	cfg.Availability.LookupTimeout = 200 * time.Millisecond

	return cfg
}
