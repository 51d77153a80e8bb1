package availability

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// testTarget is the proposed slot start used across oracle tests.
var testTarget = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestOracle(t *testing.T, provider types.CalendarProvider, opts ...Option) *Oracle {
	t.Helper()

	opts = append([]Option{WithRetryRandSource(rand.New(rand.NewPCG(1, 2)))}, opts...)
	o, err := NewOracle(provider, opts...)
	require.NoError(t, err)

	return o
}

func event(id string, typ types.EventType, start time.Time, d time.Duration) types.CalendarEvent {
	return types.CalendarEvent{ID: id, Title: id, Type: typ, Start: start, End: start.Add(d)}
}

func TestNewOracle(t *testing.T) {
	t.Run("nil provider", func(t *testing.T) {
		_, err := NewOracle(nil)
		require.ErrorIs(t, err, types.ErrCalendarProviderRequired)
	})

	t.Run("defaults", func(t *testing.T) {
		o, err := NewOracle(rotationtest.NewStubCalendar())
		require.NoError(t, err)
		require.Equal(t, DefaultLookupTimeout, o.timeout)
		require.NotNil(t, o.cache)
	})
}

func TestCheckMemberAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("clear calendar scores 100", func(t *testing.T) {
		o := newTestOracle(t, rotationtest.NewStubCalendar())
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 100.0, r.Score, 0.001)
		require.Empty(t, r.Conflicts)
		require.Empty(t, r.SuggestedTimes)
		require.False(t, r.Degraded)
	})

	t.Run("work event overlap is critical", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice", event("standup", types.EventWork, testTarget, time.Hour))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 50.0, r.Score, 0.001)
		require.Len(t, r.Conflicts, 1)
		require.Equal(t, types.SeverityCritical, r.Conflicts[0].Severity)
		require.False(t, r.Conflicts[0].CanOverride)
		require.NotEmpty(t, r.SuggestedTimes)
	})

	t.Run("overlap severity follows the event type", func(t *testing.T) {
		cases := []struct {
			typ      types.EventType
			severity types.ConflictSeverity
			score    float64
		}{
			{types.EventWork, types.SeverityCritical, 50},
			{types.EventTravel, types.SeverityHigh, 70},
			{types.EventFamily, types.SeverityMedium, 85},
			{types.EventPersonal, types.SeverityLow, 95},
		}
		for _, tc := range cases {
			t.Run(string(tc.typ), func(t *testing.T) {
				cal := rotationtest.NewStubCalendar()
				cal.SetEvents("alice", event("busy", tc.typ, testTarget, time.Hour))
				o := newTestOracle(t, cal)
				member := rotationtest.SimpleMember("alice")

				r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
				require.InDelta(t, tc.score, r.Score, 0.001)
				require.Equal(t, tc.severity, r.Conflicts[0].Severity)
			})
		}
	})

	t.Run("buffer violation without direct overlap", func(t *testing.T) {
		// Work event ends ten minutes before the slot, inside its 30-minute
		// buffer.
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice", event("meeting", types.EventWork, testTarget.Add(-70*time.Minute), time.Hour))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 90.0, r.Score, 0.001)
		require.Len(t, r.Conflicts, 1)
		require.Equal(t, types.SeverityMedium, r.Conflicts[0].Severity)
		require.True(t, r.Conflicts[0].CanOverride)
	})

	t.Run("overlap is not double-counted as a buffer violation", func(t *testing.T) {
		// An event overlapping the slot also sits inside its own buffer
		// window; only the overlap must be reported.
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice", event("errand", types.EventPersonal, testTarget, time.Hour))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 95.0, r.Score, 0.001)
		require.Len(t, r.Conflicts, 1)
		require.Len(t, r.Reasoning, 1)
	})

	t.Run("non-UTC slot resolves the local calendar day", func(t *testing.T) {
		// 05:00 in a UTC+10 zone is still the previous day in UTC; the
		// lookup must use the target's own calendar date.
		zone := time.FixedZone("UTC+10", 10*60*60)
		target := time.Date(2025, 3, 10, 5, 0, 0, 0, zone)
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice", event("standup", types.EventWork, target, time.Hour))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, target, 30*time.Minute)
		require.Len(t, r.Conflicts, 1)
		require.Equal(t, types.SeverityCritical, r.Conflicts[0].Severity)
		require.InDelta(t, 50.0, r.Score, 0.001)
	})

	t.Run("explicit unavailability", func(t *testing.T) {
		o := newTestOracle(t, rotationtest.NewStubCalendar())
		member := rotationtest.SimpleMember("alice")
		member.Preferences.UnavailabilityPeriods = []types.Period{
			{Start: testTarget.Add(-time.Hour), End: testTarget.Add(time.Hour)},
		}

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 75.0, r.Score, 0.001)
		require.Len(t, r.Conflicts, 1)
		require.Equal(t, types.ConflictAvailability, r.Conflicts[0].Type)
	})

	t.Run("preferred window lifts a conflicted slot", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice", event("dinner", types.EventFamily, testTarget, time.Hour))
		o := newTestOracle(t, cal)

		member := rotationtest.SimpleMember("alice")
		member.Preferences.PreferredTimeRanges = []types.ClockRange{{StartHour: 13, EndHour: 16}}

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 100.0, r.Score, 0.001) // 100 - 15 + 15
	})

	t.Run("low energy window", func(t *testing.T) {
		o := newTestOracle(t, rotationtest.NewStubCalendar())
		member := rotationtest.SimpleMember("alice")
		member.Preferences.EnergyPatterns = []types.EnergyPattern{
			{Level: types.EnergyLow, Window: types.ClockRange{StartHour: 13, EndHour: 16}},
		}

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.InDelta(t, 90.0, r.Score, 0.001)
	})

	t.Run("score never leaves the unit range", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.SetEvents("alice",
			event("shift", types.EventWork, testTarget, time.Hour),
			event("oncall", types.EventWork, testTarget, 2*time.Hour),
			event("flight", types.EventTravel, testTarget, time.Hour),
		)
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.Zero(t, r.Score)
		require.Len(t, r.Conflicts, 3)
	})

	t.Run("provider failure degrades", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.Fail(errors.New("calendar backend down"))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.True(t, r.Degraded)
		require.InDelta(t, float64(types.DefaultAvailabilityScore), r.Score, 0.001)
		require.Len(t, r.Conflicts, 1)
		require.Equal(t, types.SeverityLow, r.Conflicts[0].Severity)
		// One failed lookup plus one retry.
		require.Equal(t, int64(2), cal.Calls())
	})

	t.Run("slow provider hits the lookup timeout", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.SetDelay(500 * time.Millisecond)
		o := newTestOracle(t, cal, WithLookupTimeout(20*time.Millisecond))
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.True(t, r.Degraded)
	})

	t.Run("non-positive duration falls back to the default", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		// Event 20 minutes in; only overlaps when the default 30-minute
		// duration applies.
		cal.SetEvents("alice", event("call", types.EventPersonal, testTarget.Add(20*time.Minute), 10*time.Minute))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 0)
		require.NotEmpty(t, r.Conflicts)
	})
}

func TestCheckMemberAvailability_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from cache", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		o.CheckMemberAvailability(ctx, &member, testTarget.Add(time.Hour), 30*time.Minute)
		require.Equal(t, int64(1), cal.Calls())
	})

	t.Run("different days miss the cache", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		o.CheckMemberAvailability(ctx, &member, testTarget.AddDate(0, 0, 1), 30*time.Minute)
		require.Equal(t, int64(2), cal.Calls())
	})

	t.Run("expired entries are refetched", func(t *testing.T) {
		now := testTarget
		cache := NewEventCache(time.Minute, WithCacheNowFunc(func() time.Time { return now }))

		cal := rotationtest.NewStubCalendar()
		o := newTestOracle(t, cal, WithCache(cache))
		member := rotationtest.SimpleMember("alice")

		o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		now = now.Add(2 * time.Minute)
		o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.Equal(t, int64(2), cal.Calls())
	})

	t.Run("failed lookups are not cached", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		cal.Fail(errors.New("backend down"))
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		cal.Fail(nil)
		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.False(t, r.Degraded)
	})
}

func TestSuggestTimes(t *testing.T) {
	ctx := context.Background()

	t.Run("proposes conflict-free same-day slots", func(t *testing.T) {
		cal := rotationtest.NewStubCalendar()
		busy := event("standup", types.EventWork, testTarget, time.Hour)
		cal.SetEvents("alice", busy)
		o := newTestOracle(t, cal)
		member := rotationtest.SimpleMember("alice")

		r := o.CheckMemberAvailability(ctx, &member, testTarget, 30*time.Minute)
		require.NotEmpty(t, r.SuggestedTimes)
		require.LessOrEqual(t, len(r.SuggestedTimes), 3)
		for _, s := range r.SuggestedTimes {
			require.False(t, s.Equal(testTarget))
			require.False(t, busy.Overlaps(s, s.Add(30*time.Minute)))
		}
	})
}
