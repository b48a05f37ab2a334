package taskstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/clock"
)

func newTask(id string) *task.Task {
	return &task.Task{
		ID:            id,
		Description:   "Research latest AI trends",
		RequestedType: "researcher",
		AgentType:     "researcher",
		Agent:         "Research Agent",
		Status:        task.StatusCompleted,
		Result:        "[Research Agent] Completed: Research latest AI trends",
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	want := newTask("T-1")
	require.NoError(t, store.Put(ctx, want.ID, want, 60*time.Second))

	got, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	_, err := store.Get(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	store := NewMemoryStore(WithClock(clk))
	defer store.Close()

	want := newTask("T-2")
	require.NoError(t, store.Put(ctx, want.ID, want, time.Second))

	// Still present before the TTL.
	_, err := store.Get(ctx, want.ID)
	require.NoError(t, err)

	// Absent after the TTL, even with no sweep running.
	clk.Advance(2 * time.Second)
	_, err = store.Get(ctx, want.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	first := newTask("T-3")
	require.NoError(t, store.Put(ctx, first.ID, first, time.Minute))

	second := newTask("T-3")
	second.Result = "updated"
	require.NoError(t, store.Put(ctx, second.ID, second, time.Minute))

	got, err := store.Get(ctx, "T-3")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Result)
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	want := newTask("T-4")
	require.NoError(t, store.Put(ctx, want.ID, want, time.Minute))

	// Mutating the stored value or a read copy must not leak into the store.
	want.Result = "mutated after put"
	got1, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	got1.Result = "mutated after get"

	got2, err := store.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, "[Research Agent] Completed: Research latest AI trends", got2.Result)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("T-%d", i)
			tk := newTask(id)
			tk.Description = fmt.Sprintf("work item %d", i)
			if err := store.Put(ctx, id, tk, time.Minute); err != nil {
				t.Errorf("put %s: %v", id, err)
				return
			}
			got, err := store.Get(ctx, id)
			if err != nil {
				t.Errorf("get %s: %v", id, err)
				return
			}
			if got.Description != tk.Description {
				t.Errorf("record %s holds another task's description: %q", id, got.Description)
			}
		}(i)
	}
	wg.Wait()

	stats, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), stats.Entries)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	store := NewMemoryStore(WithClock(clk), WithSweepInterval(10*time.Millisecond))
	defer store.Close()

	require.NoError(t, store.Put(ctx, "T-5", newTask("T-5"), time.Second))
	clk.Advance(2 * time.Second)

	require.Eventually(t, func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		_, ok := store.entries["T-5"]
		return !ok
	}, time.Second, 10*time.Millisecond, "sweep did not reclaim the expired entry")
}

func TestMemoryStoreInfoCountsOnlyLiveEntries(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFake(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	store := NewMemoryStore(WithClock(clk))
	defer store.Close()

	require.NoError(t, store.Put(ctx, "T-6", newTask("T-6"), time.Second))
	require.NoError(t, store.Put(ctx, "T-7", newTask("T-7"), time.Hour))
	clk.Advance(2 * time.Second)

	stats, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, "memory", stats.Backend)
}
