package airalo

import (
	"context"
	"net/http"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// TopupService tops up existing eSIMs.
type TopupService struct {
	service
}

// Create places a top-up for the given ICCID.
func (s *TopupService) Create(ctx context.Context, req TopupRequest) (*Envelope, error) {
	if req.PackageID == "" {
		return nil, apierr.Validationf("package_id is required")
	}
	if err := validateTopupICCID(req.ICCID); err != nil {
		return nil, err
	}
	if req.Description == "" {
		req.Description = defaultOrderDescription
	}

	resp, err := s.postJSON(ctx, "create topup", s.cfg.URL()+SlugTopups, req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseEnvelope("create topup", resp.Body)
}
