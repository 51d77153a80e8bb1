package types

import (
	"context"
	"time"
)

// MemberDirectory supplies the members of a family.
//
// Implementations are read-only collaborators owned by the caller. The
// bundled testing package provides an in-memory implementation.
type MemberDirectory interface {
	// ListActiveMembers returns the active members of a family together
	// with their rotation preferences.
	ListActiveMembers(ctx context.Context, familyID string) ([]Member, error)
}

// ChoreStore supplies open chores for workload computation and batch lookup.
type ChoreStore interface {
	// ListOpenChores returns the family's currently open (assigned but not
	// completed) chores.
	ListOpenChores(ctx context.Context, familyID string) ([]Chore, error)

	// GetChore returns a single chore by ID.
	GetChore(ctx context.Context, familyID, choreID string) (*Chore, error)
}

// CompletionHistoryStore supplies completion records over a trailing window.
type CompletionHistoryStore interface {
	// ListCompletions returns the family's completion records with
	// CompletedAt >= since, in no particular order.
	ListCompletions(ctx context.Context, familyID string, since time.Time) ([]CompletionRecord, error)
}

// CalendarProvider supplies a member's calendar events for one date.
//
// Real integrations live outside this subsystem; a deterministic stub is
// available in the testing package. Errors are tolerated: the availability
// oracle degrades to a default result instead of propagating them.
type CalendarProvider interface {
	// EventsForDate returns the member's events on the calendar date of day
	// (the time-of-day portion of day is ignored).
	EventsForDate(ctx context.Context, memberID string, day time.Time) ([]CalendarEvent, error)
}

// RotationStateStore persists the family round-robin cursor.
//
// The engine never writes rotation state; callers advance and save the
// cursor after accepting an assignment. store/natskv provides a NATS
// JetStream KV backed implementation.
type RotationStateStore interface {
	// Load returns the family's rotation state, or ErrStateNotFound.
	Load(ctx context.Context, familyID string) (*RotationState, error)

	// Save stores the family's rotation state, replacing any prior value.
	Save(ctx context.Context, familyID string, state *RotationState) error
}
