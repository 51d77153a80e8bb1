package types

import "time"

// ConflictType classifies what kind of constraint a conflict violates.
type ConflictType string

// Conflict types.
const (
	ConflictCalendar     ConflictType = "calendar"
	ConflictCapacity     ConflictType = "capacity"
	ConflictPreference   ConflictType = "preference"
	ConflictSkill        ConflictType = "skill"
	ConflictAvailability ConflictType = "availability"
)

// ConflictSeverity grades how serious a conflict is.
type ConflictSeverity string

// Conflict severities in ascending order.
const (
	SeverityLow      ConflictSeverity = "low"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityHigh     ConflictSeverity = "high"
	SeverityCritical ConflictSeverity = "critical"
)

// ScheduleConflict is a detected incompatibility between a candidate
// assignment and real-world constraints.
type ScheduleConflict struct {
	Type        ConflictType     `json:"type"`
	Severity    ConflictSeverity `json:"severity"`
	Description string           `json:"description"`
	CanOverride bool             `json:"canOverride"`
}

// Blocking reports whether the conflict forces escalation to an alternative
// candidate: critical conflicts always block, high ones block unless
// overridable.
func (c ScheduleConflict) Blocking() bool {
	if c.Severity == SeverityCritical {
		return true
	}

	return c.Severity == SeverityHigh && !c.CanOverride
}

// HasBlocking reports whether any conflict in the slice blocks assignment.
func HasBlocking(conflicts []ScheduleConflict) bool {
	for _, c := range conflicts {
		if c.Blocking() {
			return true
		}
	}

	return false
}

// EventType classifies a calendar event for conflict severity grading.
type EventType string

// Calendar event types.
const (
	EventWork     EventType = "work"
	EventTravel   EventType = "travel"
	EventFamily   EventType = "family"
	EventPersonal EventType = "personal"
)

// CalendarEvent is one entry on a member's calendar.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title,omitempty"`
	Type  EventType `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the event intersects the [start, end) interval.
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}

// AvailabilityResult is the oracle's verdict for one member and time slot.
type AvailabilityResult struct {
	MemberID string `json:"memberId"`

	// Score is the availability score in [0, 100].
	Score float64 `json:"score"`

	Conflicts []ScheduleConflict `json:"conflicts,omitempty"`

	// SuggestedTimes lists up to three alternative conflict-free slots.
	SuggestedTimes []time.Time `json:"suggestedTimes,omitempty"`

	// Reasoning explains the score adjustments, one entry per factor.
	Reasoning []string `json:"reasoning,omitempty"`

	// Degraded is true when the calendar provider failed and the result is
	// the non-fatal default.
	Degraded bool `json:"degraded,omitempty"`
}
