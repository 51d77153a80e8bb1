// Package strategy provides the built-in assignee selection strategies.
//
// A strategy picks the next assignee for a chore from a pre-filtered
// candidate set. The package includes seven built-in strategies:
//
//   - RoundRobin: Walks the family rotation order from the persisted cursor
//   - WorkloadBalance: Composite of capacity headroom, fairness, and completion rate
//   - SkillBased: Full-skill matches first, partial-credit fallback
//   - CalendarAware: Concurrent availability lookups, highest score wins
//   - RandomFair: Weighted random draw biased toward underloaded members
//   - PreferenceBased: Blends preference fit with fairness
//   - Mixed: Weighted blend of any enabled strategies
//
// # Strategy Selection Guide
//
// RoundRobin:
//   - Use for predictable turn-taking
//   - Deterministic given the persisted cursor
//
// WorkloadBalance:
//   - Use when equalizing load matters more than turn order
//
// SkillBased:
//   - Use for chores with required certifications
//   - Never hard-fails: falls back to partial skill credit
//
// CalendarAware:
//   - Use when assignments must respect member calendars
//   - Requires an availability checker; degrades gracefully without one
//
// RandomFair:
//   - Use to break monotony while still favoring underloaded members
//   - The only nondeterministic strategy (inject a seeded source in tests)
//
// PreferenceBased:
//   - Use when member enjoyment matters; weights are family-configured
//
// Mixed:
//   - Use to blend several of the above with per-strategy weights
//
// Custom strategies can be implemented by satisfying the types.Strategy
// interface and registering them with a Registry.
package strategy
