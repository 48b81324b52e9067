package airalo

import (
	"context"
	"net/http"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/client"
)

// SimService reads per-eSIM state: usage, top-up history, package history.
type SimService struct {
	service
}

// SimResult is the per-ICCID outcome of a bulk usage query.
type SimResult struct {
	Envelope *Envelope
	Err      error
}

// Usage returns the current usage of one eSIM.
func (s *SimService) Usage(ctx context.Context, iccid string) (*Envelope, error) {
	if err := validateSimICCID(iccid); err != nil {
		return nil, err
	}

	url := s.cfg.URL() + SlugSims + "/" + iccid + "/usage"
	return s.cachedGet(ctx, "sim usage", "sim_usage", url, SimUsageTTL, nil)
}

// UsageBulk fetches usage for several eSIMs concurrently, keyed by ICCID.
func (s *SimService) UsageBulk(ctx context.Context, iccids []string) (map[string]*SimResult, error) {
	if len(iccids) == 0 {
		return nil, apierr.Validationf("at least one iccid is required")
	}
	for _, iccid := range iccids {
		if err := validateSimICCID(iccid); err != nil {
			return nil, err
		}
	}

	headers, _, err := s.authHeaders(ctx)
	if err != nil {
		return nil, err
	}

	requests := make([]client.TaggedRequest, 0, len(iccids))
	for _, iccid := range iccids {
		requests = append(requests, client.TaggedRequest{
			Tag:     iccid,
			Method:  http.MethodGet,
			URL:     s.cfg.URL() + SlugSims + "/" + iccid + "/usage",
			Headers: headers,
		})
	}

	results := s.multi.Exec(ctx, requests)

	out := make(map[string]*SimResult, len(results))
	for tag, result := range results {
		out[tag] = s.simResult(tag, result)
	}
	return out, nil
}

// TopupHistory returns the top-ups applied to one eSIM.
func (s *SimService) TopupHistory(ctx context.Context, iccid string) (*Envelope, error) {
	if err := validateSimICCID(iccid); err != nil {
		return nil, err
	}

	url := s.cfg.URL() + SlugSims + "/" + iccid + "/topups"
	return s.cachedGet(ctx, "sim topup history", "sim_topups", url, SimUsageTTL, nil)
}

// PackageHistory returns the packages an eSIM has held.
func (s *SimService) PackageHistory(ctx context.Context, iccid string) (*Envelope, error) {
	if err := validateSimICCID(iccid); err != nil {
		return nil, err
	}

	url := s.cfg.URL() + SlugSims + "/" + iccid + "/packages"
	return s.cachedGet(ctx, "sim package history", "sim_packages", url, SimPackageHistoryTTL, nil)
}

func (s *SimService) simResult(tag string, result *client.TaggedResult) *SimResult {
	if result.Err != nil {
		return &SimResult{Err: result.Err}
	}
	if result.Response.StatusCode != http.StatusOK {
		return &SimResult{Err: &apierr.APIError{
			Operation:  "sim usage " + tag,
			StatusCode: result.Response.StatusCode,
			Body:       result.Response.Text(),
		}}
	}

	envelope, err := parseEnvelope("sim usage "+tag, result.Response.Body)
	if err != nil {
		s.logger.Warn().Err(err).Str("iccid", tag).Msg("bulk usage response failed to parse")
		return &SimResult{Err: err}
	}
	return &SimResult{Envelope: envelope}
}
