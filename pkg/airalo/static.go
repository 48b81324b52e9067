package airalo

import (
	"context"
	"sync"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/config"
)

// Process-wide default client, guarded for concurrent use. Init builds it,
// Default hands it out, Reset tears it down so tests and credential
// rotations can start over.
var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Init builds the process-wide default client. Calling Init again replaces
// the previous default.
func Init(ctx context.Context, cfg *config.Config, opts ...Option) error {
	c, err := New(ctx, cfg, opts...)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultClient = c
	defaultMu.Unlock()
	return nil
}

// Default returns the client set up by Init.
func Default() (*Client, error) {
	defaultMu.RLock()
	c := defaultClient
	defaultMu.RUnlock()

	if c == nil {
		return nil, apierr.Configurationf("default client not initialized, call Init first")
	}
	return c, nil
}

// Reset discards the default client.
func Reset() {
	defaultMu.Lock()
	defaultClient = nil
	defaultMu.Unlock()
}
