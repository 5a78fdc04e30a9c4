package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	t.Run("should mark and detect processed keys", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		ctx := context.Background()

		processed, err := store.IsProcessed(ctx, "key-1")
		require.NoError(t, err)
		assert.False(t, processed)

		marked, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, marked)

		processed, err = store.IsProcessed(ctx, "key-1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("should not mark the same key twice", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		ctx := context.Background()

		marked, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, marked)

		marked, err = store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, marked)
	})

	t.Run("should expire keys after ttl", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()
		ctx := context.Background()

		_, err := store.MarkProcessed(ctx, "key-1", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "key-1")
		require.NoError(t, err)
		assert.False(t, processed)

		// expired key can be re-marked
		marked, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, marked)
	})

	t.Run("should be safe to close twice", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}
