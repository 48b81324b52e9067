package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

// DefaultConcurrency is the worker count for tagged batch execution.
const DefaultConcurrency = 5

// TaggedRequest is one request in a batch, identified by a caller-chosen tag.
type TaggedRequest struct {
	Tag     string
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// TaggedResult carries the outcome for one tag. Err is set for transport
// failures; HTTP error statuses arrive in Response like everywhere else.
type TaggedResult struct {
	Tag      string
	Response *Response
	Err      error
}

// Multi executes tagged requests concurrently over a bounded worker pool.
// Results are keyed by tag; one failed request never fails the batch.
type Multi struct {
	resource    *Resource
	concurrency int
}

// NewMulti creates a batch executor over the given transport.
func NewMulti(resource *Resource, concurrency int) *Multi {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Multi{
		resource:    resource,
		concurrency: concurrency,
	}
}

// Exec runs all requests and returns a result per tag. Workers stop early
// when the context is cancelled; unstarted tags are absent from the result.
func (m *Multi) Exec(ctx context.Context, requests []TaggedRequest) map[string]*TaggedResult {
	logger := logging.NewLogger("multi")

	queue := make(chan TaggedRequest, len(requests))
	results := make(chan *TaggedResult, len(requests))

	for _, req := range requests {
		queue <- req
	}
	close(queue)

	workers := m.concurrency
	if workers > len(requests) {
		workers = len(requests)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range queue {
				select {
				case <-ctx.Done():
					logger.Debug().Str("tag", req.Tag).Msg("Worker stopping (context cancelled)")
					results <- &TaggedResult{Tag: req.Tag, Err: ctx.Err()}
					continue
				default:
				}

				var resp *Response
				var err error
				switch req.Method {
				case http.MethodGet:
					resp, err = m.resource.Get(ctx, req.URL, req.Headers)
				default:
					resp, err = m.resource.PostJSON(ctx, req.URL, req.Headers, req.Body)
				}

				if err != nil {
					logger.Warn().Err(err).Str("tag", req.Tag).Msg("Batch request failed")
				}
				results <- &TaggedResult{Tag: req.Tag, Response: resp, Err: err}
			}
		}()
	}

	wg.Wait()
	close(results)

	out := make(map[string]*TaggedResult, len(requests))
	for result := range results {
		out[result.Tag] = result
	}
	return out
}
