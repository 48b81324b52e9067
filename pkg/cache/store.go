package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss indicates the requested key was not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the cache entry is invalid or corrupted
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is a cache backend. Implementations must return ErrCacheMiss for
// absent or expired keys and must be safe for concurrent use.
type Store interface {
	// Get retrieves an entry by key.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set stores an entry. Entries whose TTL has already elapsed are dropped.
	Set(ctx context.Context, key string, entry *Entry) error

	// Delete removes an entry. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries written by this store.
	Clear(ctx context.Context) error
}
