package airalo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// PackagesService reads the package catalog.
type PackagesService struct {
	service
}

// ListOptions filters the catalog query.
type ListOptions struct {
	// Limit trims the aggregated result to at most this many country
	// entries. Zero means no limit.
	Limit int

	// Page starts pagination at this page instead of the first.
	Page int

	// SimOnly drops the top-up package variants from the listing.
	SimOnly bool

	// Type filters by package type, "local" or "global".
	Type string

	// Country filters by ISO country code, case-insensitive.
	Country string
}

// List returns the aggregated catalog, walking all pages the API reports.
// The whole aggregate is cached for DefaultCacheTTL. Returns nil without an
// error when the API yields no usable data.
func (s *PackagesService) List(ctx context.Context, opts ListOptions) (*PackageList, error) {
	headers, token, err := s.authHeaders(ctx)
	if err != nil {
		return nil, err
	}

	key := s.fingerprint("packages", s.buildURL(opts, 0), opts.params(), token)
	data, err := s.cache.Get(ctx, key, DefaultCacheTTL, func(ctx context.Context) ([]byte, error) {
		list, err := s.fetchAll(ctx, opts, headers)
		if err != nil {
			return nil, err
		}
		return json.Marshal(list)
	})
	if err != nil {
		return nil, err
	}

	var list PackageList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &apierr.APIError{Operation: "decode cached packages", Err: err}
	}
	if len(list.Data) == 0 {
		return nil, nil
	}
	return &list, nil
}

// All lists the full catalog.
func (s *PackagesService) All(ctx context.Context) (*PackageList, error) {
	return s.List(ctx, ListOptions{})
}

// SimOnly lists the catalog without top-up variants.
func (s *PackagesService) SimOnly(ctx context.Context) (*PackageList, error) {
	return s.List(ctx, ListOptions{SimOnly: true})
}

// Local lists local packages.
func (s *PackagesService) Local(ctx context.Context) (*PackageList, error) {
	return s.List(ctx, ListOptions{Type: "local"})
}

// Global lists global packages.
func (s *PackagesService) Global(ctx context.Context) (*PackageList, error) {
	return s.List(ctx, ListOptions{Type: "global"})
}

// Country lists packages for one country.
func (s *PackagesService) Country(ctx context.Context, countryCode string) (*PackageList, error) {
	return s.List(ctx, ListOptions{Country: countryCode})
}

// fetchAll walks the paginated catalog until the last page, the limit, or
// an unparseable page ends the walk.
func (s *PackagesService) fetchAll(ctx context.Context, opts ListOptions, headers map[string]string) (*PackageList, error) {
	aggregate := &PackageList{Data: []CountryPackages{}}

	page := opts.Page
	if page <= 0 {
		page = 1
	}

	for {
		pageURL := s.buildURL(opts, page)
		resp, err := s.resource.Get(ctx, pageURL, headers)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &apierr.APIError{
				Operation:  "list packages",
				StatusCode: resp.StatusCode,
				Body:       resp.Text(),
			}
		}

		var pageData struct {
			Pricing json.RawMessage   `json:"pricing"`
			Data    []CountryPackages `json:"data"`
			Meta    *Meta             `json:"meta"`
		}
		if err := json.Unmarshal(resp.Body, &pageData); err != nil {
			s.logger.Warn().Err(err).Int("page", page).Msg("unparseable catalog page, stopping pagination")
			break
		}
		if len(pageData.Data) == 0 {
			break
		}

		if aggregate.Pricing == nil {
			aggregate.Pricing = pageData.Pricing
		}
		aggregate.Data = append(aggregate.Data, pageData.Data...)

		if opts.Limit > 0 && len(aggregate.Data) >= opts.Limit {
			aggregate.Data = aggregate.Data[:opts.Limit]
			break
		}
		if pageData.Meta == nil || pageData.Meta.LastPage <= page {
			break
		}
		page++
	}

	return aggregate, nil
}

// buildURL renders the catalog URL. A zero page omits the page parameter so
// the same URL identifies the whole aggregate in the cache key.
func (s *PackagesService) buildURL(opts ListOptions, page int) string {
	v := url.Values{}
	if !opts.SimOnly {
		v.Set("include", "topup")
	}
	if opts.Type != "" {
		v.Set("filter[type]", opts.Type)
	}
	if opts.Country != "" {
		v.Set("filter[country]", strings.ToUpper(opts.Country))
	}
	if opts.Limit > 0 {
		v.Set("limit", strconv.Itoa(opts.Limit))
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	return s.cfg.URL() + SlugPackages + "?" + v.Encode()
}

func (o ListOptions) params() map[string]string {
	params := map[string]string{}
	if o.Limit > 0 {
		params["limit"] = strconv.Itoa(o.Limit)
	}
	if o.Page > 0 {
		params["page"] = strconv.Itoa(o.Page)
	}
	if o.SimOnly {
		params["simOnly"] = "true"
	}
	if o.Type != "" {
		params["type"] = o.Type
	}
	if o.Country != "" {
		params["country"] = strings.ToUpper(o.Country)
	}
	return params
}
