package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

// Encrypt encrypts plaintext with AES-256-GCM under a key derived from the
// key string. The result is base64(nonce || ciphertext); decrypting with a
// different key string fails, it never yields garbage.
func Encrypt(plaintext, key string) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", &apierr.CryptoError{Op: "encrypt", Err: err}
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", &apierr.CryptoError{Op: "encrypt", Err: err}
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Truncated, tampered, or foreign-key ciphertexts
// all return a CryptoError.
func Decrypt(ciphertext, key string) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", &apierr.CryptoError{Op: "decrypt", Err: err}
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", &apierr.CryptoError{Op: "decrypt", Err: err}
	}
	if len(raw) < aead.NonceSize() {
		return "", &apierr.CryptoError{Op: "decrypt", Err: errors.New("ciphertext shorter than nonce")}
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &apierr.CryptoError{Op: "decrypt", Err: err}
	}
	return string(plaintext), nil
}

// newAEAD derives a 32-byte AES key from the key string and builds the GCM
// cipher. Any non-empty key string is usable.
func newAEAD(key string) (cipher.AEAD, error) {
	if key == "" {
		return nil, errors.New("encryption key is empty")
	}

	derived := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(derived[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
