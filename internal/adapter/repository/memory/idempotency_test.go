package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_CheckAndSet(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-1", []byte("pending"), time.Hour)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, cached, err := store.CheckAndSet(ctx, "key-1", []byte("other"), time.Hour)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []byte("pending"), cached)

	// Distinct keys never collide.
	exists, _, err = store.CheckAndSet(ctx, "key-2", []byte("pending"), time.Hour)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIdempotencyStore_Update(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	_, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Update(ctx, "key-1", []byte(`{"message":"ok"}`), time.Hour))

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Hour)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []byte(`{"message":"ok"}`), cached)
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, _, err := store.CheckAndSet(ctx, "key-1", []byte("pending"), time.Hour)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)

	// The expired entry is replaced, not returned.
	exists, _, err := store.CheckAndSet(ctx, "key-1", []byte("fresh"), time.Hour)
	require.NoError(t, err)
	assert.False(t, exists)
}
