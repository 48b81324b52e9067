package airalo

import (
	"context"
)

// InstructionsService reads eSIM installation instructions.
type InstructionsService struct {
	service
}

// Get returns the installation instructions for one eSIM. The language
// header is sent even when empty, matching the upstream API contract, and
// localizes the instructions when set.
func (s *InstructionsService) Get(ctx context.Context, iccid, language string) (*Envelope, error) {
	if err := validateSimICCID(iccid); err != nil {
		return nil, err
	}

	url := s.cfg.URL() + SlugSims + "/" + iccid + "/instructions"
	headers := map[string]string{"Accept-Language": language}
	return s.cachedGet(ctx, "installation instructions", "instructions", url, DefaultCacheTTL, headers)
}
