package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint identifies a cached API response by everything that can change
// it: the URL, the query or body parameters, the identifying headers, and a
// token prefix so entries are scoped to the authenticated account.
type Fingerprint struct {
	// Prefix names the operation and becomes the readable part of the key.
	Prefix string

	// URL is the full request URL.
	URL string

	// Params are query or body parameters.
	Params map[string]string

	// Headers are the identifying request headers.
	Headers map[string]string

	// TokenPrefix is a short prefix of the access token. The full token is
	// never part of the key material.
	TokenPrefix string
}

// String generates the deterministic cache key: the prefix, an underscore,
// and the MD5 hex digest of the canonical JSON form of the fingerprint.
// json.Marshal serializes map keys in sorted order, so the digest does not
// depend on map insertion order. The same inputs always produce the same
// key; no state outside the struct is consulted.
func (f Fingerprint) String() string {
	material := map[string]any{
		"url":     f.URL,
		"params":  f.Params,
		"headers": f.Headers,
		"token":   f.TokenPrefix,
	}

	// Marshal of string maps cannot fail.
	data, _ := json.Marshal(material)
	sum := md5.Sum(data)

	digest := hex.EncodeToString(sum[:])
	if f.Prefix == "" {
		return digest
	}
	return f.Prefix + "_" + digest
}
