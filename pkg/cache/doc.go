// Package cache provides TTL caching for API responses and access tokens.
//
// A Cache fronts a Store backend and fills misses through a caller-supplied
// producer function. Concurrent misses for the same key are collapsed so the
// producer runs at most once per key at a time.
//
// # Basic Usage
//
//	store := cache.NewMemoryStore()
//	c := cache.New(store)
//
//	key := cache.Fingerprint{
//		Prefix: "packages",
//		URL:    "https://partners-api.airalo.com/v2/packages",
//		Params: map[string]string{"limit": "25"},
//	}.String()
//
//	data, err := c.Get(ctx, key, time.Hour, func(ctx context.Context) ([]byte, error) {
//		// fetch from the API
//		return body, nil
//	})
//
// # Backends
//
// NewMemoryStore returns the default in-process store. NewRedisStore wraps a
// go-redis client for deployments where multiple processes share one cache;
// its keys are namespaced under the "airalo:" prefix so Clear only touches
// entries this SDK wrote.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - airalo_cache_hits_total{layer} - Cache hits
//   - airalo_cache_misses_total - Cache misses
//   - airalo_cache_errors_total{operation} - Cache operation errors
package cache
