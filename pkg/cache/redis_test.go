package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	entry := &Entry{
		Value:     []byte(`{"data":"value"}`),
		ExpiresAt: time.Now().Add(time.Hour),
		CachedAt:  time.Now(),
	}
	if err := store.Set(ctx, "key", entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Value) != string(entry.Value) {
		t.Errorf("Get().Value = %q, want %q", got.Value, entry.Value)
	}
}

func TestRedisStore_MissForAbsentKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestRedisStore_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	if err := mr.Set(keyPrefix+"key", "not json"); err != nil {
		t.Fatalf("seeding miniredis: %v", err)
	}

	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Get() error = %v, want ErrInvalidEntry", err)
	}
}

func TestRedisStore_SetAppliesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	entry := &Entry{
		Value:     []byte("v"),
		ExpiresAt: time.Now().Add(time.Hour),
		CachedAt:  time.Now(),
	}
	if err := store.Set(ctx, "key", entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ttl := mr.TTL(keyPrefix + "key")
	if ttl <= 59*time.Minute || ttl > time.Hour {
		t.Errorf("redis TTL = %v, want close to 1h", ttl)
	}
}

func TestRedisStore_ClearOnlyTouchesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	entry := &Entry{
		Value:     []byte("v"),
		ExpiresAt: time.Now().Add(time.Hour),
		CachedAt:  time.Now(),
	}
	if err := store.Set(ctx, "mine", entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := mr.Set("someone-elses-key", "data"); err != nil {
		t.Fatalf("seeding miniredis: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, err := store.Get(ctx, "mine"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after Clear() error = %v, want ErrCacheMiss", err)
	}
	if !mr.Exists("someone-elses-key") {
		t.Error("Clear() must not delete keys outside the SDK prefix")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)

	entry := &Entry{
		Value:     []byte("v"),
		ExpiresAt: time.Now().Add(time.Hour),
		CachedAt:  time.Now(),
	}
	if err := store.Set(ctx, "key", entry); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss after delete", err)
	}
}
