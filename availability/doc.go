// Package availability scores how available members are for a proposed
// chore slot, detects calendar conflicts, and suggests alternative times.
//
// The Oracle consults an injected CalendarProvider through a TTL cache (the
// only mutable shared state in the subsystem). Cache reads are safe for
// concurrent use and writes to the same key are idempotent, so last-writer-
// wins needs no locking. Calendar failures never propagate: every lookup
// degrades to a default-availability result with a low-severity warning
// conflict so assignment can proceed.
package availability
