package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetAbsent(t *testing.T) {
	store := NewMemoryStore()

	value, ok, err := store.Get(context.Background(), "s1", "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`{"a":1}`)))

	value, ok, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestMemoryStore_SessionsIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`one`)))
	require.NoError(t, store.Put(ctx, "s2", "cart", []byte(`two`)))

	value, ok, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`one`), value)
}

func TestMemoryStore_PutOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`old`)))
	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`new`)))

	value, _, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`new`), value)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`x`)))
	require.NoError(t, store.Delete(ctx, "s1", "cart"))

	_, ok, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "s1", "cart"))
}

func TestMemoryStore_ReturnedValueIsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", "cart", []byte(`abc`)))

	value, _, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	value[0] = 'X'

	again, _, err := store.Get(ctx, "s1", "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`abc`), again)
}
