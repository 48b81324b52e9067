package airalo

import (
	"context"
	"net/url"
	"time"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// ExchangeRateService reads currency exchange rates.
type ExchangeRateService struct {
	service
}

// Rates returns exchange rates, optionally for a specific date and a set of
// target currencies.
func (s *ExchangeRateService) Rates(ctx context.Context, opts ExchangeRateOptions) (*Envelope, error) {
	if opts.Date != "" {
		parsed, err := time.Parse(ExchangeRateDateLayout, opts.Date)
		if err != nil || parsed.Format(ExchangeRateDateLayout) != opts.Date {
			return nil, apierr.Validationf("date %q must use the format %q", opts.Date, ExchangeRateDateLayout)
		}
	}
	if opts.To != "" && !currencyListPattern.MatchString(opts.To) {
		return nil, apierr.Validationf("to %q must be a comma-separated list of 3-letter currency codes", opts.To)
	}

	v := url.Values{}
	if opts.Date != "" {
		v.Set("date", opts.Date)
	}
	if opts.To != "" {
		v.Set("to", opts.To)
	}

	rateURL := s.cfg.URL() + SlugExchangeRates
	if encoded := v.Encode(); encoded != "" {
		rateURL += "?" + encoded
	}

	return s.cachedGet(ctx, "exchange rates", "exchange_rates", rateURL, DefaultCacheTTL, nil)
}
