package fairness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
	"github.com/grumpylemon/family-clean-sub002/types"
)

func TestCalculateMemberWorkloads(t *testing.T) {
	ctx := context.Background()

	t.Run("zero history keeps the default snapshot", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		e := newTestEngine(t, fx)

		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", []types.Member{rotationtest.SimpleMember("alice")})
		require.NoError(t, err)
		require.Len(t, workloads, 1)

		w := workloads[0]
		require.Equal(t, "alice", w.MemberID)
		require.Zero(t, w.CurrentChores)
		require.Zero(t, w.WeeklyPoints)
		require.InDelta(t, 1.0, w.CompletionRate, 0.001)
		require.InDelta(t, 100.0, w.FairnessScore, 0.001)
		require.Zero(t, w.CapacityUtilization)
		require.InDelta(t, types.NeutralPreferenceRate, w.PreferenceRespectRate, 0.001)
	})

	t.Run("aggregates open chores and the completion window", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		fx.AddChore(types.Chore{ID: "c1", FamilyID: "family-1", Type: "kitchen", Difficulty: types.DifficultyMedium, Points: 5, AssignedTo: "alice"})
		fx.AddChore(types.Chore{ID: "c2", FamilyID: "family-1", Type: "yard", Difficulty: types.DifficultyHard, Points: 3, AssignedTo: "alice"})
		// Inside the weekly window.
		fx.AddCompletion(types.CompletionRecord{
			MemberID: "alice", ChoreID: "c3", Difficulty: types.DifficultyEasy,
			Points: 2, CompletedAt: testNow.Add(-2 * 24 * time.Hour), Duration: 20 * time.Minute,
		})
		// Inside the workload window but past the weekly cutoff.
		fx.AddCompletion(types.CompletionRecord{
			MemberID: "alice", ChoreID: "c4", Difficulty: types.DifficultyEasy,
			Points: 4, CompletedAt: testNow.Add(-14 * 24 * time.Hour), Duration: 40 * time.Minute,
		})
		e := newTestEngine(t, fx)

		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", []types.Member{rotationtest.SimpleMember("alice")})
		require.NoError(t, err)
		require.Len(t, workloads, 1)

		w := workloads[0]
		require.Equal(t, 2, w.CurrentChores)
		require.Equal(t, 8, w.CurrentPoints)
		require.Equal(t, 3, w.WeeklyChores)
		require.Equal(t, 10, w.WeeklyPoints)
		require.InDelta(t, 0.5, w.CompletionRate, 0.001) // 2 completed of 4 touched
		require.InDelta(t, 0.3, w.CapacityUtilization, 0.001)
		require.Equal(t, 30*time.Minute, w.AverageCompletionTime)
		require.Equal(t, 2, w.DifficultyDistribution[types.DifficultyEasy])
		require.Equal(t, 1, w.DifficultyDistribution[types.DifficultyMedium])
		require.Equal(t, 1, w.DifficultyDistribution[types.DifficultyHard])
	})

	t.Run("loaded member scores below idle peers", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		fx.AddChore(types.Chore{ID: "c1", FamilyID: "family-1", Points: 5, AssignedTo: "alice"})
		fx.AddChore(types.Chore{ID: "c2", FamilyID: "family-1", Points: 5, AssignedTo: "alice"})
		e := newTestEngine(t, fx)

		members := []types.Member{
			rotationtest.SimpleMember("alice"),
			rotationtest.SimpleMember("bob"),
			rotationtest.SimpleMember("carol"),
		}
		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", members)
		require.NoError(t, err)
		require.Len(t, workloads, 3)
		require.Less(t, workloads[0].FairnessScore, workloads[1].FairnessScore)
		require.InDelta(t, workloads[1].FairnessScore, workloads[2].FairnessScore, 0.001)
	})

	t.Run("bounded invariants hold under skewed data", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		for i := 0; i < 15; i++ {
			fx.AddChore(types.Chore{ID: "open", FamilyID: "family-1", Points: 10, AssignedTo: "alice"})
		}
		fx.AddCompletion(types.CompletionRecord{MemberID: "bob", Points: 1, CompletedAt: testNow.Add(-time.Hour)})
		e := newTestEngine(t, fx)

		members := []types.Member{rotationtest.SimpleMember("alice"), rotationtest.SimpleMember("bob")}
		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", members)
		require.NoError(t, err)
		for _, w := range workloads {
			require.GreaterOrEqual(t, w.FairnessScore, 0.0)
			require.LessOrEqual(t, w.FairnessScore, 100.0)
			require.GreaterOrEqual(t, w.CapacityUtilization, 0.0)
			require.LessOrEqual(t, w.CapacityUtilization, 1.0)
			require.GreaterOrEqual(t, w.CompletionRate, 0.0)
			require.LessOrEqual(t, w.CompletionRate, 1.0)
			require.GreaterOrEqual(t, w.PreferenceRespectRate, 0.0)
			require.LessOrEqual(t, w.PreferenceRespectRate, 1.0)
		}
	})

	t.Run("custom weekly allowance drives utilization", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		fx.AddChore(types.Chore{ID: "c1", FamilyID: "family-1", Points: 1, AssignedTo: "alice"})
		fx.AddChore(types.Chore{ID: "c2", FamilyID: "family-1", Points: 1, AssignedTo: "alice"})
		e := newTestEngine(t, fx)

		member := rotationtest.SimpleMember("alice")
		member.Preferences.MaxChoresPerWeek = 4

		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", []types.Member{member})
		require.NoError(t, err)
		require.InDelta(t, 0.5, workloads[0].CapacityUtilization, 0.001)
	})

	t.Run("no members", func(t *testing.T) {
		fx := rotationtest.NewFixture("family-1")
		e := newTestEngine(t, fx)

		workloads, err := e.CalculateMemberWorkloads(ctx, "family-1", nil)
		require.NoError(t, err)
		require.Empty(t, workloads)
	})
}

func TestShareFairness(t *testing.T) {
	t.Run("parity scores 100", func(t *testing.T) {
		require.InDelta(t, 100.0, shareFairness(5, 10, 0.5), 0.001)
	})

	t.Run("no family activity scores 100", func(t *testing.T) {
		require.InDelta(t, 100.0, shareFairness(0, 0, 0.5), 0.001)
	})

	t.Run("two points per percentage point of deviation", func(t *testing.T) {
		// 60% actual vs 50% expected: 100 - 200*0.1 = 80.
		require.InDelta(t, 80.0, shareFairness(6, 10, 0.5), 0.001)
	})

	t.Run("floored at zero", func(t *testing.T) {
		require.Zero(t, shareFairness(10, 10, 0.25))
	})
}

func TestPreferenceRespectRate(t *testing.T) {
	member := rotationtest.SimpleMember("alice")
	member.Preferences.PreferredChoreTypes = []string{"kitchen"}
	member.Preferences.DislikedChoreTypes = []string{"yard"}

	t.Run("no assignments is neutral", func(t *testing.T) {
		require.InDelta(t, types.NeutralPreferenceRate, preferenceRespectRate(&member, nil), 0.001)
	})

	t.Run("preferred assignments score higher than disliked ones", func(t *testing.T) {
		preferred := preferenceRespectRate(&member, []types.Chore{{Type: "kitchen"}})
		disliked := preferenceRespectRate(&member, []types.Chore{{Type: "yard"}})
		require.Greater(t, preferred, disliked)
	})

	t.Run("clamped to the unit interval", func(t *testing.T) {
		open := []types.Chore{{Type: "yard"}, {Type: "yard"}, {Type: "yard"}}
		rate := preferenceRespectRate(&member, open)
		require.GreaterOrEqual(t, rate, 0.0)
		require.LessOrEqual(t, rate, 1.0)
	})
}
