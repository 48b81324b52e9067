package airalo

import (
	"context"
	"net/http"
	"time"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// FutureOrderService schedules orders for later fulfillment.
type FutureOrderService struct {
	service
}

// Create schedules an order. The due date must match FutureOrderDateLayout
// exactly. Optional fields left empty are omitted from the signed payload.
func (s *FutureOrderService) Create(ctx context.Context, req FutureOrderRequest) (*Envelope, error) {
	if req.PackageID == "" {
		return nil, apierr.Validationf("package_id is required")
	}
	if req.Quantity < 1 {
		return nil, apierr.Validationf("quantity is required")
	}
	if req.Quantity > FutureOrderLimit {
		return nil, apierr.Validationf("quantity exceeds the maximum of %d", FutureOrderLimit)
	}
	if err := validateDueDate(req.DueDate); err != nil {
		return nil, err
	}
	if req.ToEmail != "" || len(req.SharingOption) > 0 {
		share := EmailSimShare{
			ToEmail:       req.ToEmail,
			SharingOption: req.SharingOption,
			CopyAddress:   req.CopyAddress,
		}
		if err := validateEmailSimShare(&share); err != nil {
			return nil, err
		}
	}

	resp, err := s.postJSON(ctx, "create future order", s.cfg.URL()+SlugFutureOrders, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create future order", resp.Body)
}

// Cancel cancels previously scheduled orders by request ID.
func (s *FutureOrderService) Cancel(ctx context.Context, req CancelFutureOrderRequest) (*Envelope, error) {
	if len(req.RequestIDs) == 0 {
		return nil, apierr.Validationf("request_ids is required")
	}
	for _, id := range req.RequestIDs {
		if id == "" {
			return nil, apierr.Validationf("request_ids must not contain empty values")
		}
	}

	resp, err := s.postJSON(ctx, "cancel future orders", s.cfg.URL()+SlugCancelFutureOrders, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("cancel future orders", resp.Body)
}

func validateDueDate(dueDate string) error {
	if dueDate == "" {
		return apierr.Validationf("due_date is required")
	}
	parsed, err := time.Parse(FutureOrderDateLayout, dueDate)
	if err != nil || parsed.Format(FutureOrderDateLayout) != dueDate {
		return apierr.Validationf("due_date %q must use the format %q", dueDate, FutureOrderDateLayout)
	}
	return nil
}
