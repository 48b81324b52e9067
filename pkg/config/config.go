// Package config loads SDK configuration from the environment and exposes
// the credential material the auth and cache layers derive their keys from.
package config

import (
	"context"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// Supported API environments.
const (
	EnvProduction = "production"
	EnvSandbox    = "sandbox"
)

// Base URLs per environment. Both carry the API version prefix; endpoint
// slugs are appended as-is.
const (
	productionURL = "https://partners-api.airalo.com/v2"
	sandboxURL    = "https://sandbox-partners-api.airalo.com/v2"
)

// Config holds credentials and SDK-wide settings.
type Config struct {
	// ClientID identifies the partner account.
	ClientID string `env:"AIRALO_CLIENT_ID, required"`

	// ClientSecret is the shared secret used for OAuth and request signing.
	ClientSecret string `env:"AIRALO_CLIENT_SECRET, required"`

	// Environment selects the API host: "production" or "sandbox".
	Environment string `env:"AIRALO_ENV, default=production"`

	// BaseURL overrides the environment-derived base URL when set. Intended
	// for tests and local mocks.
	BaseURL string `env:"AIRALO_BASE_URL"`

	// HTTPTimeoutSeconds is the connect+read timeout for outbound requests.
	HTTPTimeoutSeconds int `env:"AIRALO_HTTP_TIMEOUT_SECS, default=30"`

	// UserAgent is sent with every request.
	UserAgent string `env:"AIRALO_USER_AGENT, default=airalo-esim-client/1.0"`

	Cache CacheConfig
}

// CacheConfig selects the shared cache backend.
type CacheConfig struct {
	// Backend is "memory" (default) or "redis".
	Backend string `env:"AIRALO_CACHE_BACKEND, default=memory"`

	// RedisAddress is the Redis server address (host:port).
	RedisAddress string `env:"AIRALO_REDIS_ADDRESS"`

	// RedisPassword is the optional Redis password.
	RedisPassword string `env:"AIRALO_REDIS_PASSWORD"`

	// RedisDB is the Redis database number.
	RedisDB int `env:"AIRALO_REDIS_DB, default=0"`
}

// Load reads configuration from the OS environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, nil)
}

func load(ctx context.Context, lookup envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookup, // nil defaults to OS environment
	})
	if err != nil {
		return nil, apierr.Configurationf("loading environment: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// New builds a configuration programmatically, for callers that manage
// credentials themselves instead of using the environment.
func New(clientID, clientSecret string) (*Config, error) {
	cfg := &Config{
		ClientID:           clientID,
		ClientSecret:       clientSecret,
		Environment:        EnvProduction,
		HTTPTimeoutSeconds: 30,
		UserAgent:          "airalo-esim-client/1.0",
		Cache:              CacheConfig{Backend: "memory"},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for the failures that would otherwise
// only show up mid-request.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return apierr.Configurationf("client_id is required")
	}
	if c.ClientSecret == "" {
		return apierr.Configurationf("client_secret is required")
	}
	if c.Environment != EnvProduction && c.Environment != EnvSandbox {
		return apierr.Configurationf("environment must be %q or %q (got %q)", EnvProduction, EnvSandbox, c.Environment)
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return apierr.Configurationf("cache backend must be \"memory\" or \"redis\" (got %q)", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddress == "" {
		return apierr.Configurationf("AIRALO_REDIS_ADDRESS required when cache backend is redis")
	}
	return nil
}

// URL returns the base API URL for the configured environment.
func (c *Config) URL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == EnvSandbox {
		return sandboxURL
	}
	return productionURL
}

// Credentials returns the OAuth client-credential mapping.
func (c *Config) Credentials() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}
}

// CredentialString returns the canonical serialized form of the credentials.
// url.Values.Encode sorts by key, so the result is stable regardless of how
// the credentials were supplied. Signing and key derivation both depend on
// this form.
func (c *Config) CredentialString() string {
	v := url.Values{}
	for key, value := range c.Credentials() {
		v.Set(key, value)
	}
	return v.Encode()
}

// HTTPHeaders returns the identifying headers included in every request and
// in response-cache fingerprints.
func (c *Config) HTTPHeaders() map[string]string {
	return map[string]string{
		"User-Agent":         c.UserAgent,
		"airalo-environment": c.Environment,
	}
}

// HTTPTimeout returns the outbound request timeout.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
