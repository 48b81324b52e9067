package airalo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/airalo-esim-client/pkg/auth"
	"github.com/Sternrassler/airalo-esim-client/pkg/cache"
	"github.com/Sternrassler/airalo-esim-client/pkg/client"
	"github.com/Sternrassler/airalo-esim-client/pkg/config"
	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

// Client is the SDK entry point. All services share one transport, one
// cache, and one token manager.
type Client struct {
	cfg    *config.Config
	cache  *cache.Cache
	tokens *auth.TokenManager
	logger zerolog.Logger

	Packages      *PackagesService
	Orders        *OrdersService
	Topups        *TopupService
	Vouchers      *VoucherService
	Sims          *SimService
	FutureOrders  *FutureOrderService
	Instructions  *InstructionsService
	Compatibility *CompatibilityService
	ExchangeRates *ExchangeRateService
}

type options struct {
	store      cache.Store
	httpClient *http.Client
	tokenOpts  []auth.Option
	logger     *zerolog.Logger
}

// Option adjusts client construction.
type Option func(*options)

// WithCacheStore injects a cache backend, overriding the configured one.
// Passing the same store to several clients makes them share cached tokens
// and responses.
func WithCacheStore(store cache.Store) Option {
	return func(o *options) { o.store = store }
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// WithTokenOptions forwards options to the token manager.
func WithTokenOptions(opts ...auth.Option) Option {
	return func(o *options) { o.tokenOpts = append(o.tokenOpts, opts...) }
}

// WithLogger replaces the facade logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = &logger }
}

// New builds a client and authenticates eagerly, so a misconfigured client
// fails at construction instead of on the first call.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var resource *client.Resource
	if o.httpClient != nil {
		resource = client.NewWithHTTPClient(o.httpClient)
	} else {
		resource = client.New(cfg.HTTPTimeout())
	}

	store := o.store
	if store == nil {
		store = storeFromConfig(cfg)
	}
	sharedCache := cache.New(store)

	signer, err := auth.NewSigner(cfg.ClientSecret)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg, resource, signer, sharedCache, o.tokenOpts...)
	if _, err := tokens.GetAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}

	multi := client.NewMulti(resource, client.DefaultConcurrency)
	logger := logging.NewLogger("airalo-client")
	if o.logger != nil {
		logger = *o.logger
	}
	logger.Info().Str("environment", cfg.Environment).Msg("client initialized")

	c := &Client{
		cfg:    cfg,
		cache:  sharedCache,
		tokens: tokens,
		logger: logger,
	}
	c.Packages = &PackagesService{newService("packages", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Orders = &OrdersService{newService("orders", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Topups = &TopupService{newService("topups", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Vouchers = &VoucherService{newService("vouchers", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Sims = &SimService{newService("sims", cfg, resource, multi, tokens, sharedCache, signer)}
	c.FutureOrders = &FutureOrderService{newService("future-orders", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Instructions = &InstructionsService{newService("instructions", cfg, resource, multi, tokens, sharedCache, signer)}
	c.Compatibility = &CompatibilityService{newService("compatibility", cfg, resource, multi, tokens, sharedCache, signer)}
	c.ExchangeRates = &ExchangeRateService{newService("exchange-rates", cfg, resource, multi, tokens, sharedCache, signer)}
	return c, nil
}

// GetAccessToken returns a valid access token, fetching one if needed.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	return c.tokens.GetAccessToken(ctx)
}

// RefreshToken discards the cached token and fetches a new one.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	return c.tokens.RefreshToken(ctx)
}

// ClearCache drops all cached responses and tokens.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

func storeFromConfig(cfg *config.Config) cache.Store {
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		}))
	}
	return cache.NewMemoryStore()
}
