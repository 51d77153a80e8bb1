package kvutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	rotationtest "github.com/grumpylemon/family-clean-sub002/testing"
)

// TestConcurrentKVBucketCreation verifies that multiple goroutines can safely
// create the same KV bucket concurrently without errors.
func TestConcurrentKVBucketCreation(t *testing.T) {
	_, nc := rotationtest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	t.Run("5 concurrent creates - same bucket", func(t *testing.T) {
		bucketName := "test-concurrent-bucket"
		numWorkers := 5

		var wg sync.WaitGroup
		errChan := make(chan error, numWorkers)
		kvs := make([]jetstream.KeyValue, numWorkers)

		for i := 0; i < numWorkers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				kv, err := EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{
					Bucket:  bucketName,
					History: 1,
				}, 3)
				if err != nil {
					errChan <- err
					return
				}

				kvs[idx] = kv
			}(i)
		}

		wg.Wait()
		close(errChan)

		var errList []error
		for err := range errChan {
			errList = append(errList, err)
		}

		require.Empty(t, errList, "All goroutines should successfully get the KV bucket")

		for i, kv := range kvs {
			require.NotNil(t, kv, "Worker %d should have valid KV instance", i)
		}
	})

	t.Run("reopen existing bucket", func(t *testing.T) {
		bucketName := "test-reopen-bucket"

		first, err := EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{Bucket: bucketName}, 3)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := EnsureKVBucketWithRetry(ctx, js, jetstream.KeyValueConfig{Bucket: bucketName}, 3)
		require.NoError(t, err)
		require.NotNil(t, second)
	})
}
