package airalo

import (
	"regexp"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

var (
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsPattern       = regexp.MustCompile(`^[0-9]+$`)
	currencyListPattern = regexp.MustCompile(`^[A-Za-z]{3}(,[A-Za-z]{3})*$`)
)

var validSharingOptions = map[string]bool{
	"link": true,
	"pdf":  true,
}

// validateEmailSimShare checks the share fields attached to an order.
func validateEmailSimShare(share *EmailSimShare) error {
	if share == nil {
		return apierr.Validationf("email SIM share details are required")
	}
	if share.ToEmail == "" {
		return apierr.Validationf("to_email is required")
	}
	if !emailPattern.MatchString(share.ToEmail) {
		return apierr.Validationf("to_email %q is not a valid email address", share.ToEmail)
	}
	if len(share.SharingOption) == 0 {
		return apierr.Validationf("sharing_option is required")
	}
	for _, option := range share.SharingOption {
		if !validSharingOptions[option] {
			return apierr.Validationf("sharing_option %q is invalid, must be link or pdf", option)
		}
	}
	for _, address := range share.CopyAddress {
		if !emailPattern.MatchString(address) {
			return apierr.Validationf("copy_address %q is not a valid email address", address)
		}
	}
	return nil
}

// validateTopupICCID enforces the top-up ICCID length band.
func validateTopupICCID(iccid string) error {
	if iccid == "" {
		return apierr.Validationf("iccid is required")
	}
	if len(iccid) < 16 || len(iccid) > 21 {
		return apierr.Validationf("iccid %q must be 16 to 21 characters", iccid)
	}
	return nil
}

// validateSimICCID enforces the SIM lookup ICCID shape: digits only,
// 18 to 22 of them.
func validateSimICCID(iccid string) error {
	if iccid == "" {
		return apierr.Validationf("iccid is required")
	}
	if len(iccid) < 18 || len(iccid) > 22 || !digitsPattern.MatchString(iccid) {
		return apierr.Validationf("iccid %q must be 18 to 22 digits", iccid)
	}
	return nil
}
