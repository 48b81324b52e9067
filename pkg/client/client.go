// Package client provides the HTTP transport used by every SDK service:
// single requests with per-call headers plus a concurrent tagged executor
// for bulk operations.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

// Prometheus metrics for outbound API requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airalo_requests_total",
		Help: "Total API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airalo_request_duration_seconds",
		Help:    "API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})
)

// DefaultTimeout bounds every outbound request unless the caller's
// http.Client overrides it.
const DefaultTimeout = 30 * time.Second

// Response is a fully-read HTTP response. The body is buffered so callers
// never deal with stream lifecycles.
type Response struct {
	StatusCode int
	Body       []byte
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Resource performs HTTP requests against the partner API.
type Resource struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a transport with the given timeout. A zero timeout falls back
// to DefaultTimeout.
func New(timeout time.Duration) *Resource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resource{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewLogger("transport"),
	}
}

// NewWithHTTPClient creates a transport over a caller-supplied http.Client.
func NewWithHTTPClient(httpClient *http.Client) *Resource {
	if httpClient == nil {
		return New(0)
	}
	return &Resource{
		httpClient: httpClient,
		logger:     logging.NewLogger("transport"),
	}
}

// Get performs a GET request.
func (r *Resource) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return r.do(ctx, http.MethodGet, url, headers, nil, "")
}

// PostJSON performs a POST request with a JSON body.
func (r *Resource) PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (*Response, error) {
	return r.do(ctx, http.MethodPost, url, headers, body, "application/json")
}

// PostForm performs a POST request with a form-urlencoded body.
func (r *Resource) PostForm(ctx context.Context, url string, headers map[string]string, form string) (*Response, error) {
	return r.do(ctx, http.MethodPost, url, headers, []byte(form), "application/x-www-form-urlencoded")
}

func (r *Resource) do(ctx context.Context, method, url string, headers map[string]string, body []byte, contentType string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range headers {
		// Explicit per-call headers win over the computed Content-Type.
		req.Header.Set(key, value)
	}

	endpoint := req.URL.Path
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	r.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("payload_bytes", len(body)).
		Msg("Executing API request")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		r.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(endpoint, "read_error").Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	r.logger.Debug().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request complete")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
