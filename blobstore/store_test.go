package blobstore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore runs the Store contract against any implementation.
func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a", []byte("hello")))

		data, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "b", []byte("v1")))
		require.NoError(t, store.Put(ctx, "b", []byte("v2")))

		data, err := store.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "c", []byte("x")))
		require.NoError(t, store.Delete(ctx, "c"))

		_, err := store.Get(ctx, "c")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, store.Delete(ctx, "c"))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "models/iris", []byte("1")))
		require.NoError(t, store.Put(ctx, "models/blobs", []byte("2")))
		require.NoError(t, store.Put(ctx, "other/x", []byte("3")))

		names, err := store.List(ctx, "models/")
		require.NoError(t, err)
		assert.Equal(t, []string{"models/blobs", "models/iris"}, names)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("original")
	require.NoError(t, store.Put(ctx, "a", data))
	data[0] = 'X'

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	// Mutating the returned slice must not affect the stored blob.
	got[0] = 'Y'
	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestLocalStore_NestedNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a/b/c", []byte("deep")))

	data, err := store.Get(ctx, "a/b/c")
	require.NoError(t, err)
	assert.Equal(t, []byte("deep"), data)
}

func TestCachingStore(t *testing.T) {
	testStore(t, NewCachingStore(NewMemoryStore()))
}

// countingStore wraps a Store and counts inner Gets.
type countingStore struct {
	Store
	gets atomic.Int64
}

func (s *countingStore) Get(ctx context.Context, name string) ([]byte, error) {
	s.gets.Add(1)
	return s.Store.Get(ctx, name)
}

func TestCachingStore_CachesReads(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	store := NewCachingStore(inner)

	require.NoError(t, store.Put(ctx, "a", []byte("v1")))

	for i := 0; i < 5; i++ {
		data, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), data)
	}
	assert.Equal(t, int64(1), inner.gets.Load())

	// Put invalidates; the next Get goes back to the inner store.
	require.NoError(t, store.Put(ctx, "a", []byte("v2")))

	data, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
	assert.Equal(t, int64(2), inner.gets.Load())
}

func TestCachingStore_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	store := NewCachingStore(inner)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "missing", []byte("now here")))

	data, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, []byte("now here"), data)
}
