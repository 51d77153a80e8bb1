package natskv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
	"github.com/grumpylemon/family-clean-sub002/types"
)

func TestStore_RoundTrip(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, nc, WithBucket("test-rotation-state"))
	require.NoError(t, err)

	state := &types.RotationState{
		MemberOrder: []string{"alice", "bob", "carol"},
		NextIndex:   2,
	}

	require.NoError(t, store.Save(ctx, "family-1", state))

	loaded, err := store.Load(ctx, "family-1")
	require.NoError(t, err)
	require.Equal(t, state.MemberOrder, loaded.MemberOrder)
	require.Equal(t, 2, loaded.NextIndex)
}

func TestStore_LoadMissing(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, nc)
	require.NoError(t, err)

	_, err = store.Load(ctx, "unknown-family")
	require.ErrorIs(t, err, types.ErrStateNotFound)
}

func TestStore_SaveReplaces(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, nc, WithBucket("test-rotation-replace"))
	require.NoError(t, err)

	first := &types.RotationState{MemberOrder: []string{"alice", "bob"}, NextIndex: 0}
	require.NoError(t, store.Save(ctx, "family-1", first))

	second := &types.RotationState{MemberOrder: []string{"alice", "bob", "carol"}, NextIndex: 1}
	require.NoError(t, store.Save(ctx, "family-1", second))

	loaded, err := store.Load(ctx, "family-1")
	require.NoError(t, err)
	require.Equal(t, second.MemberOrder, loaded.MemberOrder)
	require.Equal(t, 1, loaded.NextIndex)
}

func TestStore_Delete(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, nc, WithBucket("test-rotation-delete"))
	require.NoError(t, err)

	state := &types.RotationState{MemberOrder: []string{"alice"}, NextIndex: 0}
	require.NoError(t, store.Save(ctx, "family-1", state))
	require.NoError(t, store.Delete(ctx, "family-1"))

	_, err = store.Load(ctx, "family-1")
	require.ErrorIs(t, err, types.ErrStateNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete(ctx, "family-1"))
}

func TestStore_RequiresConnection(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, nil)
	require.Error(t, err)
}

func TestStore_SaveRequiresState(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := New(ctx, nc, WithBucket("test-rotation-nil"))
	require.NoError(t, err)

	require.Error(t, store.Save(ctx, "family-1", nil))
}
