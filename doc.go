// Package rotation provides a Go library for chore rotation, workload
// fairness, and calendar availability decisions in shared households.
//
// The engine decides who should be assigned a recurring task: it filters
// eligible members, scores candidates under one of seven pluggable
// strategies (optionally blended), reconciles the pick against calendar
// conflicts, and escalates to alternative candidates when conflicts are
// unacceptable. It performs no writes of its own — applying a decision to
// the chore store is the caller's responsibility.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/grumpylemon/family-clean-sub002"
//
//	cfg := rotation.DefaultConfig()
//	engine, err := rotation.NewEngine(&cfg, members, chores, history)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := engine.DetermineNextAssignee(ctx, chore, family)
//	if result.Success {
//	    applyAssignment(chore, result.AssignedMemberID)
//	}
//
// # Key Features
//
//   - Seven Selection Strategies: round robin, workload balance, skill
//     based, calendar aware, random fair, preference based, and a weighted
//     mixed blend — all extensible through a registry
//   - Fairness Tracking: per-member workload snapshots, family equity
//     metrics, rebalancing recommendations, and trend analysis over time
//   - Availability Checking: calendar conflict detection with severity
//     grading, buffer windows, preference adjustments, and suggested
//     alternative times, backed by a TTL cache
//   - Conflict Escalation: blocking conflicts promote a conflict-free
//     alternative candidate; when none exists the original candidate is
//     still exposed for manual override
//   - Batch Processing: multi-chore assignment with dry-run support and
//     projected fairness impact
//
// # Architecture
//
// A decision flows through a fixed pipeline:
//
//	resolve strategy → compute workloads → filter eligible → select →
//	conflict check → escalate if blocked → RotationResult
//
// Independent decisions share no mutable state except the availability
// cache, so concurrent calls for different chores are safe.
//
// # Advanced Usage
//
// Wiring a calendar provider and decision hooks:
//
//	hooks := &rotation.Hooks{
//	    OnAssigned: func(ctx context.Context, result *rotation.RotationResult) error {
//	        return notifyMember(ctx, result.AssignedMemberID)
//	    },
//	}
//
//	engine, err := rotation.NewEngine(&cfg, members, chores, history,
//	    rotation.WithCalendarProvider(calendar),
//	    rotation.WithHooks(hooks),
//	    rotation.WithLogger(logger),
//	)
//
// The fairness and availability components are also usable on their own
// through the fairness and availability subpackages, or via the engine's
// Fairness() and Availability() accessors.
package rotation
