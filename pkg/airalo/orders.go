package airalo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/client"
)

// OrdersService places eSIM orders.
type OrdersService struct {
	service
}

// BulkOrderItem is one package line in a bulk order.
type BulkOrderItem struct {
	PackageID string
	Quantity  int
}

// OrderResult is the per-package outcome of a bulk order. Exactly one of
// Envelope and Err is set.
type OrderResult struct {
	Envelope *Envelope
	Err      error
}

// Create places a single order. Type defaults to "sim" and the description
// defaults to an SDK marker when empty.
func (s *OrdersService) Create(ctx context.Context, req OrderRequest) (*Envelope, error) {
	if err := validateOrder(&req); err != nil {
		return nil, err
	}

	resp, err := s.postJSON(ctx, "create order", s.cfg.URL()+SlugOrders, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create order", resp.Body)
}

// CreateWithEmailSimShare places an order whose eSIMs are shared by email.
func (s *OrdersService) CreateWithEmailSimShare(ctx context.Context, req OrderRequest, share EmailSimShare) (*Envelope, error) {
	if err := validateOrder(&req); err != nil {
		return nil, err
	}
	if err := validateEmailSimShare(&share); err != nil {
		return nil, err
	}

	payload := orderShare{OrderRequest: req, EmailSimShare: share}
	resp, err := s.postJSON(ctx, "create order with email share", s.cfg.URL()+SlugOrders, payload, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create order with email share", resp.Body)
}

// CreateAsync places an order processed asynchronously; the API acknowledges
// with 202 and delivers the result to the webhook.
func (s *OrdersService) CreateAsync(ctx context.Context, req OrderRequest) (*Envelope, error) {
	if err := validateOrder(&req); err != nil {
		return nil, err
	}

	resp, err := s.postJSON(ctx, "create async order", s.cfg.URL()+SlugOrdersAsync, req, http.StatusAccepted)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create async order", resp.Body)
}

// CreateBulk places one order per package concurrently. The result maps each
// package ID to its own outcome; one rejected package never fails the rest.
func (s *OrdersService) CreateBulk(ctx context.Context, items []BulkOrderItem, description string) (map[string]*OrderResult, error) {
	return s.bulk(ctx, items, description, nil, s.cfg.URL()+SlugOrders, http.StatusOK)
}

// CreateAsyncBulk is CreateBulk against the asynchronous endpoint.
func (s *OrdersService) CreateAsyncBulk(ctx context.Context, items []BulkOrderItem, description string) (map[string]*OrderResult, error) {
	return s.bulk(ctx, items, description, nil, s.cfg.URL()+SlugOrdersAsync, http.StatusAccepted)
}

// CreateBulkWithEmailSimShare is CreateBulk with email delivery attached to
// every order.
func (s *OrdersService) CreateBulkWithEmailSimShare(ctx context.Context, items []BulkOrderItem, description string, share EmailSimShare) (map[string]*OrderResult, error) {
	if err := validateEmailSimShare(&share); err != nil {
		return nil, err
	}
	return s.bulk(ctx, items, description, &share, s.cfg.URL()+SlugOrders, http.StatusOK)
}

func (s *OrdersService) bulk(ctx context.Context, items []BulkOrderItem, description string, share *EmailSimShare, url string, wantStatus int) (map[string]*OrderResult, error) {
	if len(items) == 0 {
		return nil, apierr.Validationf("at least one package is required")
	}
	if len(items) > BulkOrderLimit {
		return nil, apierr.Validationf("bulk order exceeds the maximum of %d packages", BulkOrderLimit)
	}

	requests := make([]client.TaggedRequest, 0, len(items))
	for _, item := range items {
		req := OrderRequest{
			PackageID:   item.PackageID,
			Quantity:    item.Quantity,
			Description: description,
		}
		if err := validateOrder(&req); err != nil {
			return nil, err
		}

		var payload any = req
		if share != nil {
			payload = orderShare{OrderRequest: req, EmailSimShare: *share}
		}

		headers, err := s.signedHeaders(ctx, payload)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal bulk order payload: %w", err)
		}

		requests = append(requests, client.TaggedRequest{
			Tag:     item.PackageID,
			Method:  http.MethodPost,
			URL:     url,
			Headers: headers,
			Body:    body,
		})
	}

	results := s.multi.Exec(ctx, requests)

	out := make(map[string]*OrderResult, len(results))
	for tag, result := range results {
		out[tag] = s.bulkResult(tag, result, wantStatus)
	}
	return out, nil
}

// bulkResult converts one tagged response into an OrderResult. Parse and
// status failures are recorded per item.
func (s *OrdersService) bulkResult(tag string, result *client.TaggedResult, wantStatus int) *OrderResult {
	if result.Err != nil {
		return &OrderResult{Err: result.Err}
	}
	if result.Response.StatusCode != wantStatus {
		return &OrderResult{Err: &apierr.APIError{
			Operation:  "create order " + tag,
			StatusCode: result.Response.StatusCode,
			Body:       result.Response.Text(),
		}}
	}

	envelope, err := parseEnvelope("create order "+tag, result.Response.Body)
	if err != nil {
		s.logger.Warn().Err(err).Str("package_id", tag).Msg("bulk order response failed to parse")
		return &OrderResult{Err: err}
	}
	return &OrderResult{Envelope: envelope}
}

// orderShare merges an order payload with its email share fields into one
// JSON object.
type orderShare struct {
	OrderRequest
	EmailSimShare
}

func validateOrder(req *OrderRequest) error {
	if req.PackageID == "" {
		return apierr.Validationf("package_id is required")
	}
	if req.Quantity < 1 {
		return apierr.Validationf("quantity is required")
	}
	if req.Quantity > OrderLimit {
		return apierr.Validationf("quantity exceeds the maximum of %d", OrderLimit)
	}
	if req.Type == "" {
		req.Type = "sim"
	}
	if req.Description == "" {
		req.Description = defaultOrderDescription
	}
	return nil
}
