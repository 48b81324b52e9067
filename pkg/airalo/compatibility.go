package airalo

import (
	"context"
)

// CompatibilityService lists eSIM-compatible devices.
type CompatibilityService struct {
	service
}

// Devices returns the compatible-device list. Returns nil without an error
// when the API sends no data.
func (s *CompatibilityService) Devices(ctx context.Context) (*Envelope, error) {
	headers := map[string]string{"Content-Type": "application/json"}
	envelope, err := s.getJSON(ctx, "compatible devices", s.cfg.URL()+SlugCompatibleDevices, headers)
	if err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, nil
	}
	return envelope, nil
}
