package airalo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/auth"
	"github.com/Sternrassler/airalo-esim-client/pkg/cache"
	"github.com/Sternrassler/airalo-esim-client/pkg/client"
	"github.com/Sternrassler/airalo-esim-client/pkg/config"
	"github.com/Sternrassler/airalo-esim-client/pkg/logging"
)

// service bundles the collaborators every API service needs.
type service struct {
	cfg      *config.Config
	resource *client.Resource
	multi    *client.Multi
	tokens   auth.TokenSource
	cache    *cache.Cache
	signer   *auth.Signer
	logger   zerolog.Logger
}

func newService(component string, cfg *config.Config, resource *client.Resource, multi *client.Multi, tokens auth.TokenSource, c *cache.Cache, signer *auth.Signer) service {
	return service{
		cfg:      cfg,
		resource: resource,
		multi:    multi,
		tokens:   tokens,
		cache:    c,
		signer:   signer,
		logger:   logging.NewLogger(component),
	}
}

// authHeaders returns the standard headers plus a bearer token, along with
// the token itself for cache key scoping.
func (s *service) authHeaders(ctx context.Context) (map[string]string, string, error) {
	token, err := s.tokens.GetAccessToken(ctx)
	if err != nil {
		return nil, "", err
	}

	headers := s.cfg.HTTPHeaders()
	headers["Authorization"] = "Bearer " + token
	return headers, token, nil
}

// signedHeaders extends authHeaders with the HMAC signature of the payload.
func (s *service) signedHeaders(ctx context.Context, payload any) (map[string]string, error) {
	headers, _, err := s.authHeaders(ctx)
	if err != nil {
		return nil, err
	}

	signature, err := s.signer.Sign(payload)
	if err != nil {
		return nil, err
	}
	headers[auth.SignatureHeader] = signature
	return headers, nil
}

// fingerprint builds the cache key for a GET response.
func (s *service) fingerprint(prefix, url string, params map[string]string, token string) string {
	return cache.Fingerprint{
		Prefix:      prefix,
		URL:         url,
		Params:      params,
		Headers:     s.cfg.HTTPHeaders(),
		TokenPrefix: tokenPrefix(token),
	}.String()
}

func tokenPrefix(token string) string {
	if len(token) > tokenPrefixLen {
		return token[:tokenPrefixLen]
	}
	return token
}

// postJSON marshals the payload, signs it, posts it, and checks the status.
func (s *service) postJSON(ctx context.Context, operation, url string, payload any, wantStatus int) (*client.Response, error) {
	headers, err := s.signedHeaders(ctx, payload)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", operation, err)
	}

	resp, err := s.resource.PostJSON(ctx, url, headers, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		return nil, &apierr.APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       resp.Text(),
		}
	}
	return resp, nil
}

// getJSON performs an authenticated GET and decodes the envelope.
func (s *service) getJSON(ctx context.Context, operation, url string, extraHeaders map[string]string) (*Envelope, error) {
	headers, _, err := s.authHeaders(ctx)
	if err != nil {
		return nil, err
	}
	for key, value := range extraHeaders {
		headers[key] = value
	}

	resp, err := s.resource.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apierr.APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       resp.Text(),
		}
	}

	var envelope Envelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, &apierr.APIError{Operation: operation, Err: err}
	}
	return &envelope, nil
}

// cachedGet performs an authenticated GET through the cache. extraHeaders
// become part of both the request and the cache key.
func (s *service) cachedGet(ctx context.Context, operation, prefix, url string, ttl time.Duration, extraHeaders map[string]string) (*Envelope, error) {
	headers, token, err := s.authHeaders(ctx)
	if err != nil {
		return nil, err
	}
	for key, value := range extraHeaders {
		headers[key] = value
	}

	key := s.fingerprint(prefix, url, extraHeaders, token)
	data, err := s.cache.Get(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		resp, err := s.resource.Get(ctx, url, headers)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &apierr.APIError{
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Body:       resp.Text(),
			}
		}
		return resp.Body, nil
	})
	if err != nil {
		return nil, err
	}
	return parseEnvelope(operation, data)
}

// parseEnvelope decodes cached response bytes.
func parseEnvelope(operation string, data []byte) (*Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &apierr.APIError{Operation: operation, Err: err}
	}
	return &envelope, nil
}
