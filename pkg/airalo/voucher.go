package airalo

import (
	"context"
	"net/http"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// VoucherService creates airmoney and eSIM vouchers.
type VoucherService struct {
	service
}

// CreateAirmoney creates airmoney vouchers. Setting a voucher code pins the
// quantity to one, since codes are unique.
func (s *VoucherService) CreateAirmoney(ctx context.Context, req VoucherRequest) (*Envelope, error) {
	if req.Amount < 1 {
		return nil, apierr.Validationf("amount is required")
	}
	if req.Amount > VoucherMaxAmount {
		return nil, apierr.Validationf("amount exceeds the maximum of %d", VoucherMaxAmount)
	}
	if req.VoucherCode != "" {
		if len(req.VoucherCode) > 255 {
			return nil, apierr.Validationf("voucher_code exceeds 255 characters")
		}
		req.Quantity = 1
	}
	if req.UsageLimit < 0 || req.UsageLimit > VoucherMaxAmount {
		return nil, apierr.Validationf("usage_limit must be between 1 and %d", VoucherMaxAmount)
	}
	if req.Quantity < 1 {
		return nil, apierr.Validationf("quantity is required")
	}
	if req.Quantity > VoucherMaxQuantity {
		return nil, apierr.Validationf("quantity exceeds the maximum of %d", VoucherMaxQuantity)
	}

	resp, err := s.postJSON(ctx, "create voucher", s.cfg.URL()+SlugVoucherAirmoney, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create voucher", resp.Body)
}

// CreateEsim creates eSIM vouchers. The quantity cap intentionally checks
// the request-level Quantity rather than the per-item quantities; see
// DESIGN.md.
func (s *VoucherService) CreateEsim(ctx context.Context, req EsimVoucherRequest) (*Envelope, error) {
	if len(req.Vouchers) == 0 {
		return nil, apierr.Validationf("vouchers is required")
	}
	for _, item := range req.Vouchers {
		if item.PackageID == "" {
			return nil, apierr.Validationf("package_id is required for each voucher")
		}
		if item.Quantity < 1 {
			return nil, apierr.Validationf("quantity is required for each voucher")
		}
	}
	if req.Quantity > VoucherMaxQuantity {
		return nil, apierr.Validationf("quantity exceeds the maximum of %d", VoucherMaxQuantity)
	}

	resp, err := s.postJSON(ctx, "create esim voucher", s.cfg.URL()+SlugVoucherEsim, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create esim voucher", resp.Body)
}
