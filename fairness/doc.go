// Package fairness computes per-member workload snapshots and family-wide
// equity metrics from open assignments and trailing completion history.
//
// The Engine is stateless: every call recomputes snapshots from the
// injected stores, so results are valid only for the instant they were
// computed. Callers that persist decisions derived from a snapshot must use
// optimistic concurrency on chore writes, because the snapshot can be stale
// by the time it is applied.
package fairness
