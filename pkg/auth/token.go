package auth

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/cache"
	"github.com/Sternrassler/airalo-esim-client/pkg/client"
	"github.com/Sternrassler/airalo-esim-client/pkg/config"
	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

const (
	// RetryLimit is the maximum number of token fetch attempts.
	RetryLimit = 3

	// TokenCacheTTL keeps cached tokens half an hour short of the 24h
	// token lifetime so a cached token is never served near expiry.
	TokenCacheTTL = 23*time.Hour + 30*time.Minute

	tokenSlug      = "/token"
	tokenKeyPrefix = "airalo_access_token_"

	defaultInitialBackoff = 1 * time.Second
	maxBackoff            = 30 * time.Second
)

// Prometheus metrics for token acquisition.
var (
	tokenRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airalo_token_retries_total",
		Help: "Total number of token fetch retry attempts",
	})

	tokenRetryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "airalo_token_retry_backoff_seconds",
		Help:    "Backoff duration between token fetch retries",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30},
	})

	tokenRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airalo_token_retry_exhausted_total",
		Help: "Total number of times token fetch retries were exhausted",
	})
)

// TokenSource supplies a valid access token for API calls.
type TokenSource interface {
	GetAccessToken(ctx context.Context) (string, error)
}

// TokenManager acquires OAuth access tokens via the client-credentials flow
// and caches them encrypted at rest. Safe for concurrent use.
type TokenManager struct {
	cfg      *config.Config
	resource *client.Resource
	signer   *Signer
	cache    *cache.Cache
	logger   zerolog.Logger

	retryLimit     int
	initialBackoff time.Duration

	// Derived once from the credential string: the at-rest encryption key
	// and the cache key. Different credentials never share either.
	encryptionKey string
	cacheKey      string
}

// Option adjusts TokenManager behavior.
type Option func(*TokenManager)

// WithRetryLimit overrides the token fetch attempt count.
func WithRetryLimit(limit int) Option {
	return func(m *TokenManager) {
		if limit > 0 {
			m.retryLimit = limit
		}
	}
}

// WithInitialBackoff overrides the first retry delay.
func WithInitialBackoff(d time.Duration) Option {
	return func(m *TokenManager) {
		if d > 0 {
			m.initialBackoff = d
		}
	}
}

// NewTokenManager creates a token manager over the given transport and cache.
func NewTokenManager(cfg *config.Config, resource *client.Resource, signer *Signer, tokenCache *cache.Cache, opts ...Option) *TokenManager {
	creds := cfg.CredentialString()
	keySum := md5.Sum([]byte(creds))
	cacheSum := sha256.Sum256([]byte(creds))

	m := &TokenManager{
		cfg:            cfg,
		resource:       resource,
		signer:         signer,
		cache:          tokenCache,
		logger:         logging.NewLogger("token-manager"),
		retryLimit:     RetryLimit,
		initialBackoff: defaultInitialBackoff,
		encryptionKey:  hex.EncodeToString(keySum[:]),
		cacheKey:       tokenKeyPrefix + hex.EncodeToString(cacheSum[:]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetAccessToken returns a valid access token, from cache when possible.
// Cached tokens are stored encrypted; an entry that no longer decrypts is
// discarded and fetched fresh.
func (m *TokenManager) GetAccessToken(ctx context.Context) (string, error) {
	encrypted, err := m.cache.Get(ctx, m.cacheKey, TokenCacheTTL, m.requestToken)
	if err != nil {
		return "", err
	}

	token, err := Decrypt(string(encrypted), m.encryptionKey)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, apierr.ErrCrypto) {
		return "", err
	}

	// Corrupted or foreign-key entry: treat as a miss.
	m.logger.Warn().Err(err).Msg("cached token failed to decrypt, refetching")
	if err := m.cache.Delete(ctx, m.cacheKey); err != nil {
		return "", err
	}

	encrypted, err = m.cache.Get(ctx, m.cacheKey, TokenCacheTTL, m.requestToken)
	if err != nil {
		return "", err
	}
	return Decrypt(string(encrypted), m.encryptionKey)
}

// RefreshToken discards any cached token and fetches a new one.
func (m *TokenManager) RefreshToken(ctx context.Context) (string, error) {
	m.logger.Info().Msg("refreshing access token")
	if err := m.ClearTokenCache(ctx); err != nil {
		return "", err
	}
	return m.GetAccessToken(ctx)
}

// ClearTokenCache removes the cached token for these credentials.
func (m *TokenManager) ClearTokenCache(ctx context.Context) error {
	return m.cache.Delete(ctx, m.cacheKey)
}

// requestToken fetches a token with bounded retry and returns it encrypted,
// ready for the cache.
func (m *TokenManager) requestToken(ctx context.Context) ([]byte, error) {
	var lastErr error
	backoff := m.initialBackoff

	for attempt := 1; attempt <= m.retryLimit; attempt++ {
		encrypted, err := m.fetchToken(ctx)
		if err == nil {
			if attempt > 1 {
				m.logger.Info().Int("attempt", attempt).Msg("token acquired after retry")
			} else {
				m.logger.Info().Msg("token acquired")
			}
			return encrypted, nil
		}
		lastErr = err

		if attempt >= m.retryLimit {
			break
		}

		tokenRetriesTotal.Inc()

		// ±20% jitter on the exponential backoff.
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		tokenRetryBackoffSeconds.Observe(jitter.Seconds())

		m.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", jitter).
			Msg("token fetch failed, retrying after backoff")

		select {
		case <-ctx.Done():
			return nil, &apierr.AuthenticationError{Attempts: attempt, Last: ctx.Err()}
		case <-time.After(jitter):
		}

		backoff = backoff * 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	tokenRetryExhaustedTotal.Inc()
	m.logger.Error().Err(lastErr).Int("attempts", m.retryLimit).Msg("token fetch retries exhausted")
	return nil, &apierr.AuthenticationError{Attempts: m.retryLimit, Last: lastErr}
}

// fetchToken performs one token request: signed form-urlencoded credentials
// in, encrypted access token out.
func (m *TokenManager) fetchToken(ctx context.Context) ([]byte, error) {
	form := m.cfg.CredentialString()

	signature, err := m.signer.Sign(form)
	if err != nil {
		return nil, err
	}

	headers := m.cfg.HTTPHeaders()
	headers[SignatureHeader] = signature

	resp, err := m.resource.PostForm(ctx, m.cfg.URL()+tokenSlug, headers, form)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apierr.APIError{
			Operation:  "obtain access token",
			StatusCode: resp.StatusCode,
			Body:       resp.Text(),
		}
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &apierr.APIError{Operation: "parse token response", Err: err}
	}
	if envelope.Data.AccessToken == "" {
		return nil, &apierr.APIError{Operation: "parse token response", Err: errors.New("access_token missing from response")}
	}

	encrypted, err := Encrypt(envelope.Data.AccessToken, m.encryptionKey)
	if err != nil {
		return nil, err
	}
	return []byte(encrypted), nil
}
