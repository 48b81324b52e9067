// Package apierr defines the error taxonomy shared across the SDK.
//
// Each error kind has a package-level sentinel for errors.Is checks and a
// typed struct carrying the details callers need (status codes, attempt
// counts, raw response bodies).
package apierr

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is classification.
var (
	// ErrConfiguration indicates missing or invalid configuration. Fatal,
	// never retried.
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates the token endpoint could not produce an
	// access token after the bounded retry loop.
	ErrAuthentication = errors.New("authentication error")

	// ErrValidation indicates a request payload failed local validation
	// before any network call was made.
	ErrValidation = errors.New("validation error")

	// ErrAPI indicates the upstream API rejected a request or returned an
	// unparseable response.
	ErrAPI = errors.New("api error")

	// ErrCrypto indicates an encrypt/decrypt failure, typically a corrupted
	// cache entry or a key derived from different credentials.
	ErrCrypto = errors.New("crypto error")
)

// ConfigurationError reports invalid SDK configuration.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Configurationf builds a ConfigurationError from a format string.
func Configurationf(format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// AuthenticationError reports an exhausted token fetch. Attempts is the
// total number of fetch attempts made; Last is the final underlying error.
type AuthenticationError struct {
	Attempts int
	Last     error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("failed to obtain access token after %d attempts: %v", e.Attempts, e.Last)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Last
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

// ValidationError reports a request payload that failed local validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// APIError reports a non-success response from the upstream API. Body holds
// the raw response text so failures stay diagnosable.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s failed, status code: %d, response: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// CryptoError reports a failed encrypt or decrypt operation.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto error: %s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

func (e *CryptoError) Is(target error) bool {
	return target == ErrCrypto
}
