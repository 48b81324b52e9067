// Package auth covers the credential side of the SDK: HMAC request signing,
// encryption of tokens at rest, and the token manager that acquires and
// caches OAuth access tokens.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// SignatureHeader carries the request signature on signed endpoints.
const SignatureHeader = "airalo-signature"

// Signer computes HMAC-SHA256 signatures over request payloads.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer for the given shared secret.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, apierr.Configurationf("signing secret is empty")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the hex HMAC-SHA256 signature of the payload. Strings and
// byte slices sign as-is; any other payload is serialized to canonical JSON
// first, so logically equal payloads always produce the same signature.
func (s *Signer) Sign(payload any) (string, error) {
	data, err := canonicalize(payload)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// canonicalize renders the payload to the exact bytes that get signed.
// Structs are round-tripped through generic values so their keys serialize
// in sorted order like map keys do, independent of field declaration order.
func canonicalize(payload any) ([]byte, error) {
	switch v := payload.(type) {
	case nil:
		return nil, apierr.Validationf("cannot sign a nil payload")
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload for signing: %w", err)
		}

		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("canonicalize payload: %w", err)
		}

		data, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("canonicalize payload: %w", err)
		}
		return data, nil
	}
}
