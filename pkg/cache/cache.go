package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

// Producer fills a cache miss. Its result is stored only on success;
// errors propagate to the caller uncached.
type Producer func(ctx context.Context) ([]byte, error)

// Cache fronts a Store and fills misses through a Producer. Concurrent
// misses for the same key run the producer once and share the result.
type Cache struct {
	store  Store
	group  singleflight.Group
	logger zerolog.Logger
}

// New creates a cache over the given store.
func New(store Store) *Cache {
	return &Cache{
		store:  store,
		logger: logging.NewLogger("cache"),
	}
}

// Get returns the cached value for key, running producer on a miss and
// storing its result with the given TTL. A failed producer caches nothing.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, producer Producer) ([]byte, error) {
	// Fast path outside singleflight.
	if entry, err := c.lookup(ctx, key); err == nil {
		return entry.Value, nil
	}

	result, err, shared := c.group.Do(key, func() (any, error) {
		// Re-check: another caller may have filled the entry between the
		// fast path and acquiring the flight.
		if entry, err := c.lookup(ctx, key); err == nil {
			return entry.Value, nil
		}

		value, err := producer(ctx)
		if err != nil {
			return nil, err
		}

		entry := &Entry{
			Value:     value,
			ExpiresAt: time.Now().Add(ttl),
			CachedAt:  time.Now(),
		}
		if err := c.store.Set(ctx, key, entry); err != nil {
			// Serve the fresh value anyway; only the next caller pays.
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to store cache entry")
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("key", key).Bool("shared", shared).Dur("ttl", ttl).Msg("cache fill")
	return result.([]byte), nil
}

// Delete removes a single entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// Clear removes all entries.
func (c *Cache) Clear(ctx context.Context) error {
	c.logger.Info().Msg("clearing cache")
	return c.store.Clear(ctx)
}

// lookup reads the store, logging unexpected backend errors. Misses and
// corrupted entries both report as errors here so the caller refills.
func (c *Cache) lookup(ctx context.Context, key string) (*Entry, error) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache backend error")
		}
		return nil, err
	}
	return entry, nil
}
