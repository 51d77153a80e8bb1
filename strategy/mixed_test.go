package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grumpylemon/family-clean-sub002/types"
)

// stubStrategy returns canned per-candidate scores for blend tests.
type stubStrategy struct {
	name   types.StrategyName
	scores map[string]float64
	err    error
}

var _ types.Strategy = (*stubStrategy)(nil)

func (s *stubStrategy) Name() types.StrategyName {
	return s.name
}

func (s *stubStrategy) Select(ctx context.Context, req *types.SelectionRequest) (*types.ScoredCandidate, error) {
	scores, err := s.ScoreCandidates(ctx, req)
	if err != nil {
		return nil, err
	}

	best := req.Candidates[0].Member.ID
	for _, c := range req.Candidates[1:] {
		if scores[c.Member.ID] > scores[best] {
			best = c.Member.ID
		}
	}

	return &types.ScoredCandidate{MemberID: best, FairnessScore: scores[best]}, nil
}

func (s *stubStrategy) ScoreCandidates(_ context.Context, _ *types.SelectionRequest) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.scores, nil
}

func mixedRegistry(t *testing.T, components ...types.Strategy) *Registry {
	t.Helper()

	registry := NewRegistry()
	for _, c := range components {
		require.NoError(t, registry.Register(c))
	}

	return registry
}

func TestMixed_Select(t *testing.T) {
	alice := candidate("alice", 50)
	bob := candidate("bob", 50)

	stubA := &stubStrategy{
		name:   "stub_a",
		scores: map[string]float64{"alice": 80, "bob": 40},
	}
	stubB := &stubStrategy{
		name:   "stub_b",
		scores: map[string]float64{"alice": 20, "bob": 100},
	}

	t.Run("blends component scores by weight", func(t *testing.T) {
		registry := mixedRegistry(t, stubA, stubB)
		mx := NewMixed(registry, nil)

		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: "stub_a", Weight: 3, Enabled: true},
				{Name: "stub_b", Weight: 1, Enabled: true},
			},
		}

		// alice: (80*3 + 20*1) / 4 = 65, bob: (40*3 + 100*1) / 4 = 55
		pick, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Equal(t, "alice", pick.MemberID)
		require.InDelta(t, 65.0, pick.FairnessScore, 0.001)
	})

	t.Run("skips disabled and zero-weight components", func(t *testing.T) {
		registry := mixedRegistry(t, stubA, stubB)
		mx := NewMixed(registry, nil)

		// stub_b would flip the pick to bob if either entry counted.
		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: "stub_a", Weight: 1, Enabled: true},
				{Name: "stub_b", Weight: 10, Enabled: false},
				{Name: "stub_b", Weight: 0, Enabled: true},
			},
		}

		pick, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Equal(t, "alice", pick.MemberID)
		require.InDelta(t, 80.0, pick.FairnessScore, 0.001)
	})

	t.Run("skips unknown component names", func(t *testing.T) {
		registry := mixedRegistry(t, stubA)
		mx := NewMixed(registry, nil)

		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: "stub_a", Weight: 1, Enabled: true},
				{Name: "no_such_strategy", Weight: 10, Enabled: true},
			},
		}

		pick, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Equal(t, "alice", pick.MemberID)
		require.InDelta(t, 80.0, pick.FairnessScore, 0.001)
	})

	t.Run("never recurses into itself", func(t *testing.T) {
		registry := mixedRegistry(t, stubA)
		mx := NewMixed(registry, nil)

		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: types.StrategyMixed, Weight: 10, Enabled: true},
				{Name: "stub_a", Weight: 1, Enabled: true},
			},
		}

		pick, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Equal(t, "alice", pick.MemberID)
	})

	t.Run("falls back to round robin when nothing is enabled", func(t *testing.T) {
		registry := mixedRegistry(t, stubA)
		mx := NewMixed(registry, nil)

		family := rotationFamily(0, "bob", "alice")
		family.Strategies = []types.StrategyWeight{
			{Name: "stub_a", Weight: 1, Enabled: false},
		}

		pick, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Equal(t, "bob", pick.MemberID)
	})

	t.Run("propagates component errors", func(t *testing.T) {
		broken := &stubStrategy{name: "broken", err: errors.New("component failed")}
		registry := mixedRegistry(t, broken)
		mx := NewMixed(registry, nil)

		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: "broken", Weight: 1, Enabled: true},
			},
		}

		_, err := mx.Select(context.Background(), newRequest(nil, family, alice, bob))
		require.ErrorContains(t, err, "component failed")
	})

	t.Run("empty candidates", func(t *testing.T) {
		mx := NewMixed(NewRegistry(), nil)

		_, err := mx.Select(context.Background(), newRequest(nil, nil))
		require.ErrorIs(t, err, ErrNoCandidates)
	})
}

func TestMixed_ScoreCandidates(t *testing.T) {
	alice := candidate("alice", 50)
	bob := candidate("bob", 50)

	stub := &stubStrategy{
		name:   "stub_a",
		scores: map[string]float64{"alice": 60, "bob": 30},
	}
	registry := mixedRegistry(t, stub)
	mx := NewMixed(registry, nil)

	t.Run("returns the weighted blend", func(t *testing.T) {
		family := &types.Family{
			ID: "family-1",
			Strategies: []types.StrategyWeight{
				{Name: "stub_a", Weight: 2, Enabled: true},
			},
		}

		scores, err := mx.ScoreCandidates(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.InDelta(t, 60.0, scores["alice"], 0.001)
		require.InDelta(t, 30.0, scores["bob"], 0.001)
	})

	t.Run("falls back to round robin scores without components", func(t *testing.T) {
		family := rotationFamily(0, "bob", "alice")

		scores, err := mx.ScoreCandidates(context.Background(), newRequest(nil, family, alice, bob))
		require.NoError(t, err)
		require.Greater(t, scores["bob"], scores["alice"])
	})
}
