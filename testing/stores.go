package testing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// Fixture is an in-memory implementation of the engine's read-only
// collaborators: MemberDirectory, ChoreStore, and CompletionHistoryStore.
//
// All methods are safe for concurrent use. Pass the same fixture as all
// three store arguments of rotation.NewEngine.
type Fixture struct {
	FamilyID string

	mu          sync.RWMutex
	members     []types.Member
	chores      []types.Chore
	completions []types.CompletionRecord
}

var (
	_ types.MemberDirectory        = (*Fixture)(nil)
	_ types.ChoreStore             = (*Fixture)(nil)
	_ types.CompletionHistoryStore = (*Fixture)(nil)
)

// NewFixture creates an empty in-memory fixture for one family.
func NewFixture(familyID string) *Fixture {
	return &Fixture{FamilyID: familyID}
}

// AddMember registers a member.
func (f *Fixture) AddMember(m types.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = append(f.members, m)
}

// AddChore registers an open chore.
func (f *Fixture) AddChore(c types.Chore) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chores = append(f.chores, c)
}

// AddCompletion registers a completion record.
func (f *Fixture) AddCompletion(r types.CompletionRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completions = append(f.completions, r)
}

// ListActiveMembers implements types.MemberDirectory.
func (f *Fixture) ListActiveMembers(ctx context.Context, familyID string) ([]types.Member, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	active := make([]types.Member, 0, len(f.members))
	for _, m := range f.members {
		if m.Active {
			active = append(active, m)
		}
	}

	return active, nil
}

// ListOpenChores implements types.ChoreStore.
func (f *Fixture) ListOpenChores(ctx context.Context, familyID string) ([]types.Chore, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]types.Chore(nil), f.chores...), nil
}

// GetChore implements types.ChoreStore.
func (f *Fixture) GetChore(ctx context.Context, familyID, choreID string) (*types.Chore, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for i := range f.chores {
		if f.chores[i].ID == choreID {
			c := f.chores[i]
			return &c, nil
		}
	}

	return nil, fmt.Errorf("chore %s not found", choreID)
}

// ListCompletions implements types.CompletionHistoryStore.
func (f *Fixture) ListCompletions(ctx context.Context, familyID string, since time.Time) ([]types.CompletionRecord, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	matched := make([]types.CompletionRecord, 0, len(f.completions))
	for _, r := range f.completions {
		if !r.CompletedAt.Before(since) {
			matched = append(matched, r)
		}
	}

	return matched, nil
}

// SimpleMember returns an active member with no preferences, for tests
// that only care about identity.
func SimpleMember(id string) types.Member {
	return types.Member{ID: id, Active: true}
}

// StubCalendar is a deterministic CalendarProvider for tests.
//
// Events are keyed by member ID and filtered to the requested date.
// Failures and latency can be injected for degraded-lookup tests.
type StubCalendar struct {
	mu     sync.RWMutex
	events map[string][]types.CalendarEvent
	err    error
	delay  time.Duration
	calls  atomic.Int64
}

var _ types.CalendarProvider = (*StubCalendar)(nil)

// NewStubCalendar creates an empty calendar stub.
func NewStubCalendar() *StubCalendar {
	return &StubCalendar{events: make(map[string][]types.CalendarEvent)}
}

// SetEvents replaces the member's calendar events.
func (c *StubCalendar) SetEvents(memberID string, events ...types.CalendarEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[memberID] = events
}

// Fail makes every subsequent lookup return err. Pass nil to recover.
func (c *StubCalendar) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// SetDelay makes every lookup sleep for d before responding, for timeout
// tests.
func (c *StubCalendar) SetDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
}

// Calls reports how many lookups the stub has served, including failures.
func (c *StubCalendar) Calls() int64 {
	return c.calls.Load()
}

// EventsForDate implements types.CalendarProvider.
func (c *StubCalendar) EventsForDate(ctx context.Context, memberID string, day time.Time) ([]types.CalendarEvent, error) {
	c.calls.Add(1)

	c.mu.RLock()
	err := c.err
	delay := c.delay
	events := c.events[memberID]
	c.mu.RUnlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	matched := make([]types.CalendarEvent, 0, len(events))
	for _, ev := range events {
		ey, em, ed := ev.Start.Date()
		if ey == y && em == m && ed == d {
			matched = append(matched, ev)
		}
	}

	return matched, nil
}
