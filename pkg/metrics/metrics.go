// Package metrics provides the centralized Prometheus metrics registry for
// the SDK. All metrics are defined in their respective packages (client,
// cache, auth) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the SDK.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - airalo_cache_hits_total{layer} (Counter): Cache hits by layer (memory, redis)
//   - airalo_cache_misses_total (Counter): Cache misses
//   - airalo_cache_errors_total{operation} (Counter): Cache operation errors
//
// Request Metrics (pkg/client):
//   - airalo_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - airalo_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//
// Token Metrics (pkg/auth):
//   - airalo_token_retries_total (Counter): Token fetch retry attempts
//   - airalo_token_retry_backoff_seconds (Histogram): Backoff duration between retries
//   - airalo_token_retry_exhausted_total (Counter): Token fetches that exhausted all attempts
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(airalo_cache_hits_total[5m])) /
//   (sum(rate(airalo_cache_hits_total[5m])) + sum(rate(airalo_cache_misses_total[5m])))
//
//   # Request Error Rate
//   sum(rate(airalo_requests_total{status=~"4..|5.."}[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(airalo_request_duration_seconds_bucket[5m]))
//
//   # Authentication Health
//   rate(airalo_token_retry_exhausted_total[15m]) > 0
