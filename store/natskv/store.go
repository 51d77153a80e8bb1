// Package natskv persists family rotation state in a NATS JetStream
// KeyValue bucket.
//
// The engine itself never writes rotation state: the round-robin cursor is
// caller-owned, advanced and saved after an assignment is accepted. This
// package gives callers a durable, multi-process-safe place to keep it.
//
// Example:
//
//	store, err := natskv.New(ctx, nc, natskv.WithBucket("chore-rotation"))
//	if err != nil {
//	    return err
//	}
//
//	state, err := store.Load(ctx, family.ID)
//	if errors.Is(err, types.ErrStateNotFound) {
//	    state = &types.RotationState{MemberOrder: memberIDs}
//	}
//	state.NextIndex = (state.NextIndex + 1) % len(state.MemberOrder)
//	err = store.Save(ctx, family.ID, state)
package natskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/grumpylemon/family-clean-sub002/internal/kvutil"
	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// DefaultBucket is the KV bucket name used when none is configured.
const DefaultBucket = "rotation-state"

// Store implements types.RotationStateStore over a JetStream KV bucket.
//
// Each family's state lives under its family ID as the key, serialized as
// JSON. Concurrent saves for the same family are last-writer-wins, which
// matches the optimistic-concurrency contract of applying decisions.
type Store struct {
	kv     jetstream.KeyValue
	logger types.Logger
}

var _ types.RotationStateStore = (*Store)(nil)

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	bucket string
	logger types.Logger
}

// WithBucket sets the KV bucket name (default "rotation-state").
func WithBucket(name string) Option {
	return func(o *storeOptions) {
		if name != "" {
			o.bucket = name
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger types.Logger) Option {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a rotation-state store backed by NATS JetStream KV.
//
// The bucket is created if it does not exist; creation races between
// multiple processes are resolved with retries.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - nc: NATS connection
//   - opts: Optional configuration (bucket name, logger)
//
// Returns:
//   - *Store: Initialized store
//   - error: Connection or bucket creation failure
func New(ctx context.Context, nc *nats.Conn, opts ...Option) (*Store, error) {
	if nc == nil {
		return nil, errors.New("NATS connection is required")
	}

	options := &storeOptions{
		bucket: DefaultBucket,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	kv, err := kvutil.EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
		Bucket:      options.bucket,
		Description: "family chore rotation cursors",
		History:     1,
	}, 3)
	if err != nil {
		return nil, err
	}

	return &Store{kv: kv, logger: options.logger}, nil
}

// Load returns the family's rotation state.
//
// Returns:
//   - *types.RotationState: The persisted state
//   - error: types.ErrStateNotFound when the family has no state
func (s *Store) Load(ctx context.Context, familyID string) (*types.RotationState, error) {
	entry, err := s.kv.Get(ctx, familyID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, types.ErrStateNotFound
		}

		return nil, fmt.Errorf("failed to load rotation state for family %s: %w", familyID, err)
	}

	var state types.RotationState
	if err := json.Unmarshal(entry.Value(), &state); err != nil {
		return nil, fmt.Errorf("failed to decode rotation state for family %s: %w", familyID, err)
	}

	return &state, nil
}

// Save stores the family's rotation state, replacing any prior value.
func (s *Store) Save(ctx context.Context, familyID string, state *types.RotationState) error {
	if state == nil {
		return errors.New("rotation state is required")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode rotation state for family %s: %w", familyID, err)
	}

	if _, err := s.kv.Put(ctx, familyID, data); err != nil {
		return fmt.Errorf("failed to save rotation state for family %s: %w", familyID, err)
	}

	s.logger.Debug("rotation state saved",
		"familyID", familyID, "nextIndex", state.NextIndex, "members", len(state.MemberOrder))

	return nil
}

// Delete removes the family's rotation state, if any.
func (s *Store) Delete(ctx context.Context, familyID string) error {
	err := s.kv.Delete(ctx, familyID)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete rotation state for family %s: %w", familyID, err)
	}

	return nil
}
