package availability

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/internal/metrics"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// Default lookup behavior.
const (
	// DefaultLookupTimeout bounds a single calendar provider call.
	DefaultLookupTimeout = 2 * time.Second

	// retryBaseDelay and retryMaxDelay bound the single jittered retry
	// after a failed provider call.
	retryBaseDelay = 50 * time.Millisecond
	retryMaxDelay  = 250 * time.Millisecond
)

// Score adjustments applied while evaluating a slot.
const (
	preferredSlotBonus = 15
	unavailablePenalty = 25
	energyAdjustment   = 10
	bufferPenalty      = 10
)

// Suggested-time scan bounds (hours of the same day) and limits.
const (
	suggestionStartHour = 6
	suggestionEndHour   = 22
	maxSuggestedTimes   = 3
	nextDaySuggestHour  = 9
)

// Oracle answers availability queries for members against their calendars.
//
// All public methods are safe for concurrent use and never return an error:
// provider failures degrade to the default-availability result.
type Oracle struct {
	provider types.CalendarProvider
	cache    *EventCache
	timeout  time.Duration

	logger  types.Logger
	metrics types.MetricsCollector
	now     func() time.Time
	rng     *rand.Rand
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithCache injects a shared event cache. By default each oracle owns a
// cache with DefaultCacheTTL.
func WithCache(cache *EventCache) Option {
	return func(o *Oracle) {
		if cache != nil {
			o.cache = cache
		}
	}
}

// WithLookupTimeout bounds each calendar provider call.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(o *Oracle) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithLogger sets the oracle logger.
func WithLogger(logger types.Logger) Option {
	return func(o *Oracle) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector types.MetricsCollector) Option {
	return func(o *Oracle) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithNowFunc injects the oracle clock, for tests.
func WithNowFunc(now func() time.Time) Option {
	return func(o *Oracle) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRetryRandSource injects a seeded source for retry jitter, for tests.
func WithRetryRandSource(rng *rand.Rand) Option {
	return func(o *Oracle) {
		o.rng = rng
	}
}

// NewOracle creates an availability oracle.
//
// Parameters:
//   - provider: Calendar provider (required)
//   - opts: Optional configuration
//
// Returns:
//   - *Oracle: Initialized oracle
//   - error: ErrCalendarProviderRequired when provider is nil
func NewOracle(provider types.CalendarProvider, opts ...Option) (*Oracle, error) {
	if provider == nil {
		return nil, types.ErrCalendarProviderRequired
	}

	o := &Oracle{
		provider: provider,
		timeout:  DefaultLookupTimeout,
		logger:   logging.NewNop(),
		metrics:  metrics.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.cache == nil {
		o.cache = NewEventCache(DefaultCacheTTL)
	}

	return o, nil
}

// CheckMemberAvailability evaluates how available a member is for the
// [target, target+duration) slot.
//
// The score starts at 100 and is reduced by event overlaps, buffer
// violations, and explicit unavailability, then adjusted for preferred
// windows and energy patterns, and finally clamped to [0, 100]. Calendar
// failures degrade to the default result instead of returning an error.
//
// Parameters:
//   - ctx: Context for the calendar lookup
//   - member: Member to evaluate (preferences feed the adjustments)
//   - target: Proposed slot start
//   - duration: Slot length; non-positive falls back to the default
//     completion time
//
// Returns:
//   - *types.AvailabilityResult: Verdict with score, conflicts, suggested
//     times, and reasoning; never nil
func (o *Oracle) CheckMemberAvailability(ctx context.Context, member *types.Member, target time.Time, duration time.Duration) *types.AvailabilityResult {
	if duration <= 0 {
		duration = types.DefaultCompletionTime
	}

	events, err := o.eventsFor(ctx, member.ID, target)
	if err != nil {
		o.logger.Warn("calendar lookup degraded", "member", member.ID, "error", err)
		o.metrics.RecordDegradedResult()

		return types.NewDegradedAvailability(member.ID)
	}

	result := &types.AvailabilityResult{MemberID: member.ID, Score: 100}
	slotEnd := target.Add(duration)

	for _, ev := range events {
		switch {
		case ev.Overlaps(target, slotEnd):
			severity := eventSeverity(ev.Type)
			result.Conflicts = append(result.Conflicts, types.ScheduleConflict{
				Type:        types.ConflictCalendar,
				Severity:    severity,
				Description: fmt.Sprintf("overlaps %s event %q", ev.Type, ev.Title),
				CanOverride: severity != types.SeverityCritical,
			})
			penalty := severityPenalty(severity)
			result.Score -= penalty
			result.Reasoning = append(result.Reasoning,
				fmt.Sprintf("direct overlap with %s event (-%.0f)", ev.Type, penalty))
		case ev.Overlaps(target.Add(-eventBuffer(ev.Type)), slotEnd.Add(eventBuffer(ev.Type))):
			// Buffer violation without direct overlap.
			result.Conflicts = append(result.Conflicts, types.ScheduleConflict{
				Type:        types.ConflictCalendar,
				Severity:    types.SeverityMedium,
				Description: fmt.Sprintf("within %s buffer of %s event %q", eventBuffer(ev.Type), ev.Type, ev.Title),
				CanOverride: true,
			})
			result.Score -= bufferPenalty
			result.Reasoning = append(result.Reasoning,
				fmt.Sprintf("inside buffer window of %s event (-%d)", ev.Type, bufferPenalty))
		}
	}

	o.applyPreferenceAdjustments(member, target, result)

	result.Score = types.ClampScore(result.Score)
	if len(result.Conflicts) > 0 {
		result.SuggestedTimes = o.suggestTimes(events, target, duration)
	}

	for _, c := range result.Conflicts {
		o.metrics.RecordConflict(string(c.Type), string(c.Severity))
	}

	return result
}

// applyPreferenceAdjustments applies preferred-window, unavailability, and
// energy-pattern adjustments in place.
func (o *Oracle) applyPreferenceAdjustments(member *types.Member, target time.Time, result *types.AvailabilityResult) {
	if member.PrefersTimeOf(target) || member.PrefersDay(target) {
		result.Score += preferredSlotBonus
		result.Reasoning = append(result.Reasoning,
			fmt.Sprintf("inside preferred window (+%d)", preferredSlotBonus))
	}

	if member.UnavailableAt(target) {
		result.Score -= unavailablePenalty
		result.Conflicts = append(result.Conflicts, types.ScheduleConflict{
			Type:        types.ConflictAvailability,
			Severity:    types.SeverityMedium,
			Description: "slot falls inside an explicit unavailability period",
			CanOverride: true,
		})
		result.Reasoning = append(result.Reasoning,
			fmt.Sprintf("explicitly unavailable (-%d)", unavailablePenalty))
	}

	switch member.EnergyAt(target) {
	case types.EnergyHigh:
		result.Score += energyAdjustment
		result.Reasoning = append(result.Reasoning,
			fmt.Sprintf("high energy window (+%d)", energyAdjustment))
	case types.EnergyLow:
		result.Score -= energyAdjustment
		result.Reasoning = append(result.Reasoning,
			fmt.Sprintf("low energy window (-%d)", energyAdjustment))
	}
}

// suggestTimes scans the same day for up to three slots with zero direct
// conflicts, falling back to 09:00 the next day when the day is full.
func (o *Oracle) suggestTimes(events []types.CalendarEvent, target time.Time, duration time.Duration) []time.Time {
	var suggestions []time.Time

	for hour := suggestionStartHour; hour <= suggestionEndHour && len(suggestions) < maxSuggestedTimes; hour++ {
		slot := time.Date(target.Year(), target.Month(), target.Day(), hour, 0, 0, 0, target.Location())
		if slot.Equal(target) {
			continue
		}
		if !anyOverlap(events, slot, slot.Add(duration)) {
			suggestions = append(suggestions, slot)
		}
	}

	if len(suggestions) == 0 {
		nextDay := target.AddDate(0, 0, 1)
		suggestions = append(suggestions, time.Date(
			nextDay.Year(), nextDay.Month(), nextDay.Day(),
			nextDaySuggestHour, 0, 0, 0, target.Location(),
		))
	}

	return suggestions
}

// eventsFor returns the member's events for the target's calendar date,
// consulting the cache first. A failed provider call is retried once with
// jittered backoff before the error is surfaced to the caller.
func (o *Oracle) eventsFor(ctx context.Context, memberID string, target time.Time) ([]types.CalendarEvent, error) {
	y, m, d := target.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, target.Location())
	if events, ok := o.cache.Get(memberID, day); ok {
		o.metrics.RecordCacheLookup(true)

		return events, nil
	}
	o.metrics.RecordCacheLookup(false)

	events, err := o.lookup(ctx, memberID, day)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", types.ErrCalendarUnavailable, ctx.Err())
		case <-time.After(o.retryDelay()):
		}
		events, err = o.lookup(ctx, memberID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrCalendarUnavailable, err)
	}

	o.cache.Put(memberID, day, events)

	return events, nil
}

// lookup performs one provider call bounded by the configured timeout.
func (o *Oracle) lookup(ctx context.Context, memberID string, day time.Time) ([]types.CalendarEvent, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := o.now()
	events, err := o.provider.EventsForDate(lookupCtx, memberID, day)
	o.metrics.RecordCalendarLookup(o.now().Sub(start).Seconds(), err == nil)

	return events, err
}

// retryDelay returns a jittered delay in [retryBaseDelay, retryMaxDelay].
func (o *Oracle) retryDelay() time.Duration {
	span := int64(retryMaxDelay - retryBaseDelay)
	var jitter int64
	if o.rng != nil {
		jitter = o.rng.Int64N(span)
	} else {
		jitter = rand.Int64N(span) //nolint:gosec // non-crypto retry jitter
	}

	return retryBaseDelay + time.Duration(jitter)
}

// anyOverlap reports whether any event directly overlaps [start, end).
func anyOverlap(events []types.CalendarEvent, start, end time.Time) bool {
	for _, ev := range events {
		if ev.Overlaps(start, end) {
			return true
		}
	}

	return false
}

// eventSeverity grades a calendar conflict by event type.
func eventSeverity(t types.EventType) types.ConflictSeverity {
	switch t {
	case types.EventWork:
		return types.SeverityCritical
	case types.EventTravel:
		return types.SeverityHigh
	case types.EventFamily:
		return types.SeverityMedium
	case types.EventPersonal:
		return types.SeverityLow
	default:
		return types.SeverityMedium
	}
}

// severityPenalty is the score reduction for a direct overlap.
func severityPenalty(s types.ConflictSeverity) float64 {
	switch s {
	case types.SeverityCritical:
		return 50
	case types.SeverityHigh:
		return 30
	case types.SeverityMedium:
		return 15
	default:
		return 5
	}
}

// eventBuffer is the type-specific buffer window tested around each event.
func eventBuffer(t types.EventType) time.Duration {
	switch t {
	case types.EventWork:
		return 30 * time.Minute
	case types.EventTravel:
		return 15 * time.Minute
	case types.EventFamily:
		return 10 * time.Minute
	default:
		return 5 * time.Minute
	}
}
