// Package testing provides test utilities for the rotation library.
//
// This package offers helpers for setting up test environments: in-memory
// store implementations, a deterministic calendar stub, a test logger, and
// an embedded NATS server for exercising the KV-backed rotation-state
// store. It follows Go's convention of providing testing utilities in a
// dedicated package (similar to net/http/httptest).
//
// Key utilities:
//   - Fixture: in-memory MemberDirectory, ChoreStore, and CompletionHistoryStore
//   - StubCalendar: deterministic CalendarProvider for conflict tests
//   - NewTestLogger: logger that writes through testing.TB
//   - StartEmbeddedNATS: single NATS server with JetStream
//
// Example usage:
//
//	import (
//	    "testing"
//	    rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    fx := rotationtest.NewFixture("family-1")
//	    fx.AddMember(rotationtest.SimpleMember("alice"))
//	    // Wire fx.Members, fx.Chores, fx.History into the engine
//	}
package testing
