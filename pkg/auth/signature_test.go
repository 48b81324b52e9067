package auth

import (
	"errors"
	"regexp"
	"testing"

	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestNewSigner_EmptySecret(t *testing.T) {
	if _, err := NewSigner(""); !errors.Is(err, apierr.ErrConfiguration) {
		t.Errorf("NewSigner(\"\") error = %v, want configuration error", err)
	}
}

func TestSign_String(t *testing.T) {
	signer, err := NewSigner("secret")
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}

	sig, err := signer.Sign("client_id=cid&client_secret=cs")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if !hexPattern.MatchString(sig) {
		t.Errorf("Sign() = %q, want 64 lowercase hex chars", sig)
	}
}

func TestSign_Deterministic(t *testing.T) {
	signer, _ := NewSigner("secret")

	first, err := signer.Sign(map[string]any{"package_id": "p1", "quantity": 2, "type": "sim"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	second, err := signer.Sign(map[string]any{"type": "sim", "quantity": 2, "package_id": "p1"})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	if first != second {
		t.Errorf("logically equal payloads signed differently: %q vs %q", first, second)
	}
}

func TestSign_StructAndMapAgree(t *testing.T) {
	signer, _ := NewSigner("secret")

	type payload struct {
		Quantity  int    `json:"quantity"`
		PackageID string `json:"package_id"`
	}

	fromStruct, err := signer.Sign(payload{Quantity: 2, PackageID: "p1"})
	if err != nil {
		t.Fatalf("Sign(struct) error = %v", err)
	}
	fromMap, err := signer.Sign(map[string]any{"package_id": "p1", "quantity": 2})
	if err != nil {
		t.Fatalf("Sign(map) error = %v", err)
	}

	if fromStruct != fromMap {
		t.Errorf("struct and equivalent map signed differently: %q vs %q", fromStruct, fromMap)
	}
}

func TestSign_DifferentSecretsDiffer(t *testing.T) {
	a, _ := NewSigner("secret-a")
	b, _ := NewSigner("secret-b")

	sigA, _ := a.Sign("payload")
	sigB, _ := b.Sign("payload")
	if sigA == sigB {
		t.Error("different secrets must produce different signatures")
	}
}

func TestSign_DifferentPayloadsDiffer(t *testing.T) {
	signer, _ := NewSigner("secret")

	sigA, _ := signer.Sign("payload-a")
	sigB, _ := signer.Sign("payload-b")
	if sigA == sigB {
		t.Error("different payloads must produce different signatures")
	}
}

func TestSign_NilPayload(t *testing.T) {
	signer, _ := NewSigner("secret")

	if _, err := signer.Sign(nil); !errors.Is(err, apierr.ErrValidation) {
		t.Errorf("Sign(nil) error = %v, want validation error", err)
	}
}

func TestSign_BytesMatchString(t *testing.T) {
	signer, _ := NewSigner("secret")

	fromString, _ := signer.Sign("raw payload")
	fromBytes, _ := signer.Sign([]byte("raw payload"))
	if fromString != fromBytes {
		t.Errorf("string and []byte of the same content signed differently")
	}
}
