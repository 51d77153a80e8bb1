// Package types provides core type definitions and interfaces for the rotation engine.
//
// This package contains shared types that are used across multiple packages in the
// module. By keeping these types in a separate package, we avoid import cycles
// between the root rotation package and its internal implementations.
//
// Key types:
//   - Member, Chore, Family: Read-only domain inputs owned by the caller
//   - MemberWorkload: Computed per-member workload snapshot
//   - RotationResult: Outcome of a single assignment decision
//   - Strategy: Pluggable assignee selection algorithm
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
