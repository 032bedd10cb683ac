package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"Norte", "Sur"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			zones, err := GetOrLoad(context.Background(), store, Key("zones", 4), loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(zones) != 2 {
				errCh <- errors.New("unexpected zones")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loadErr := errors.New("db down")

	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, loadErr
		}
		return 42, nil
	}

	if _, err := GetOrLoad(context.Background(), store, "k", loader); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got=%v", err)
	}
	got, err := GetOrLoad(context.Background(), store, "k", loader)
	if err != nil || got != 42 {
		t.Fatalf("expected 42 on retry, got=%d err=%v", got, err)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "standings:1", "table")
	if _, ok := store.Get(context.Background(), "standings:1"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "standings:1"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, Key("standings", 1), 1)
	store.Set(ctx, Key("standings", 1, "Norte"), 2)
	store.Set(ctx, Key("scorers", 1), 3)

	if removed := store.DeletePrefix(ctx, "standings:"); removed != 2 {
		t.Fatalf("expected 2 removed, got=%d", removed)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got=%d", store.Len())
	}
}

func TestGetOrLoad_NilStoreBypassesCache(t *testing.T) {
	t.Parallel()

	var calls int
	loader := func(context.Context) (string, error) {
		calls++
		return "x", nil
	}
	for i := 0; i < 2; i++ {
		if _, err := GetOrLoad(context.Background(), (*Store)(nil), "k", loader); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 loads without store, got=%d", calls)
	}
}

func TestGetOrLoad_InvalidationDuringLoadIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	started := make(chan struct{})
	release := make(chan struct{})

	type result struct {
		value string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := GetOrLoad(ctx, store, "read:standings:1", func(context.Context) (string, error) {
			close(started)
			<-release
			return "before sync", nil
		})
		done <- result{value: value, err: err}
	}()

	<-started
	store.DeletePrefix(ctx, "read:")

	// A caller arriving after the invalidation must not join the stale load.
	fresh, err := GetOrLoad(ctx, store, "read:standings:1", func(context.Context) (string, error) {
		return "after sync", nil
	})
	if err != nil || fresh != "after sync" {
		t.Fatalf("expected fresh load, got=%q err=%v", fresh, err)
	}

	close(release)
	stale := <-done
	if stale.err != nil || stale.value != "before sync" {
		t.Fatalf("expected in-flight caller to get its own load, got=%q err=%v", stale.value, stale.err)
	}

	cached, ok := store.Get(ctx, "read:standings:1")
	if !ok || cached != "after sync" {
		t.Fatalf("expected post-invalidation value to stay cached, got=%v ok=%t", cached, ok)
	}
}

func TestStore_Advance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "read:standings:1", 1)
	store.Set(ctx, "other:1", 2)

	cases := []struct {
		name    string
		mark    int64
		dropped bool
	}{
		{name: "first mark", mark: 7, dropped: true},
		{name: "same mark", mark: 7, dropped: false},
		{name: "new mark", mark: 8, dropped: true},
	}
	for _, tc := range cases {
		store.Set(ctx, "read:standings:1", 1)
		if _, dropped := store.Advance(ctx, "read:", tc.mark); dropped != tc.dropped {
			t.Fatalf("%s: expected dropped=%t, got=%t", tc.name, tc.dropped, dropped)
		}
		if _, ok := store.Get(ctx, "read:standings:1"); ok == tc.dropped {
			t.Fatalf("%s: unexpected presence=%t", tc.name, ok)
		}
	}
	if _, ok := store.Get(ctx, "other:1"); !ok {
		t.Fatalf("expected entries outside the prefix to survive")
	}
	if _, dropped := (*Store)(nil).Advance(ctx, "read:", 1); dropped {
		t.Fatalf("expected nil store to be a no-op")
	}
}
