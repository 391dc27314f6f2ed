package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
)

func newTestFileStore(t *testing.T) *FileStore {
	return NewFileStore(filepath.Join(t.TempDir(), "orders.json"))
}

func TestFileStore_Append_GrowsCollectionByOne(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	order := &domain.Order{ProductTitle: "Red Jacket", Price: "$50"}
	require.NoError(t, store.Append(ctx, order))

	assert.NotEmpty(t, order.ID)
	assert.False(t, order.ReceivedAt.IsZero())
	assert.False(t, order.Processed)
	assert.Nil(t, order.ProcessedAt)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestFileStore_Append_GeneratesUniqueIDs(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order := &domain.Order{ProductTitle: "Scarf", Price: "$10"}
		require.NoError(t, store.Append(ctx, order))
		assert.False(t, seen[order.ID], "duplicate id %s", order.ID)
		seen[order.ID] = true
	}

	orders, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 50)
}

func TestFileStore_List_MissingFileIsEmpty(t *testing.T) {
	store := newTestFileStore(t)

	orders, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileStore_List_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	orders, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestFileStore_ToggleProcessed(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	order := &domain.Order{ProductTitle: "Boots", Price: "$80"}
	require.NoError(t, store.Append(ctx, order))

	toggled, err := store.ToggleProcessed(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Processed)
	require.NotNil(t, toggled.ProcessedAt)

	toggled, err = store.ToggleProcessed(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Processed)
	assert.Nil(t, toggled.ProcessedAt)
}

func TestFileStore_ToggleProcessed_UnknownID(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.ToggleProcessed(context.Background(), "missing")
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestFileStore_Delete(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	first := &domain.Order{ProductTitle: "Hat", Price: "$15"}
	second := &domain.Order{ProductTitle: "Gloves", Price: "$20"}
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))

	removed, err := store.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, removed.ID)

	orders, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	_, err = store.Delete(ctx, first.ID)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok, "second delete of the same id must be NotFound")
}

// The in-process mutex makes concurrent appends from a single process safe;
// this test detects, rather than assumes, that no update is lost. Separate
// processes sharing the file still race last-writer-wins.
func TestFileStore_ConcurrentAppends_SameProcess(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, &domain.Order{ProductTitle: "Belt", Price: "$5"})
		}()
	}
	wg.Wait()

	orders, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, n)
}
