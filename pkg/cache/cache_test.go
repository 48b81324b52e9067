package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCache_MissRunsProducerThenHits(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("fresh"), nil
	}

	got, err := c.Get(ctx, "key", time.Hour, producer)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "fresh" {
		t.Errorf("Get() = %q, want %q", got, "fresh")
	}

	// Second call must be served from the store.
	got, err = c.Get(ctx, "key", time.Hour, producer)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "fresh" {
		t.Errorf("Get() = %q, want %q", got, "fresh")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("producer ran %d times, want 1", n)
	}
}

func TestCache_ProducerErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	boom := errors.New("upstream down")
	var calls int32
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, boom
	}

	if _, err := c.Get(ctx, "key", time.Hour, producer); !errors.Is(err, boom) {
		t.Fatalf("Get() error = %v, want producer error", err)
	}

	// The failure must not be cached; the next call retries the producer.
	if _, err := c.Get(ctx, "key", time.Hour, producer); !errors.Is(err, boom) {
		t.Fatalf("Get() error = %v, want producer error", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("producer ran %d times, want 2", n)
	}
}

func TestCache_ExpiredEntryRefilled(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := New(store)

	stale := &Entry{
		Value:     []byte("stale"),
		ExpiresAt: time.Now().Add(-time.Second),
		CachedAt:  time.Now().Add(-time.Hour),
	}
	store.mu.Lock()
	store.entries["key"] = stale
	store.mu.Unlock()

	got, err := c.Get(ctx, "key", time.Hour, func(ctx context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "fresh" {
		t.Errorf("Get() = %q, want refilled value", got)
	}
}

func TestCache_ConcurrentMissesShareOneProducer(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	release := make(chan struct{})
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("shared"), nil
	}

	const goroutines = 8
	var wg sync.WaitGroup
	results := make([][]byte, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(ctx, "key", time.Hour, producer)
		}(i)
	}

	// Let all goroutines reach the flight before the producer returns.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: Get() error = %v", i, errs[i])
		}
		if string(results[i]) != "shared" {
			t.Errorf("goroutine %d: Get() = %q, want %q", i, results[i], "shared")
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("producer ran %d times, want 1", n)
	}
}

func TestCache_DeleteForcesRefill(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("v"), nil
	}

	if _, err := c.Get(ctx, "key", time.Hour, producer); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(ctx, "key", time.Hour, producer); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("producer ran %d times after delete, want 2", n)
	}
}

func TestCache_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore())

	var calls int32
	producer := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("v"), nil
	}

	for _, key := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, key, time.Hour, producer); err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, key := range []string{"a", "b", "c"} {
		if _, err := c.Get(ctx, key, time.Hour, producer); err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
	}

	if n := atomic.LoadInt32(&calls); n != 6 {
		t.Errorf("producer ran %d times, want 6", n)
	}
}

func TestMemoryStore_MissForAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_ExpiredEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.mu.Lock()
	store.entries["key"] = &Entry{
		Value:     []byte("old"),
		ExpiresAt: time.Now().Add(-time.Second),
	}
	store.mu.Unlock()

	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss for expired entry", err)
	}

	// Lazy expiry removes the entry.
	store.mu.RLock()
	_, present := store.entries["key"]
	store.mu.RUnlock()
	if present {
		t.Error("expired entry should have been removed on read")
	}
}

func TestMemoryStore_SetDropsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.Set(ctx, "key", &Entry{
		Value:     []byte("old"),
		ExpiresAt: time.Now().Add(-time.Second),
	})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}
