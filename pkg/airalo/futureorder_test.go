package airalo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/Sternrassler/airalo-esim-client/internal/testutil"
	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
)

func TestFutureOrder_CreateValidation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	c := newTestClient(t, mock)

	tests := []struct {
		name string
		req  FutureOrderRequest
	}{
		{"missing package", FutureOrderRequest{Quantity: 1, DueDate: "2026-09-01 10:00"}},
		{"zero quantity", FutureOrderRequest{PackageID: "p1", DueDate: "2026-09-01 10:00"}},
		{"over limit", FutureOrderRequest{PackageID: "p1", Quantity: FutureOrderLimit + 1, DueDate: "2026-09-01 10:00"}},
		{"missing due date", FutureOrderRequest{PackageID: "p1", Quantity: 1}},
		{"date only", FutureOrderRequest{PackageID: "p1", Quantity: 1, DueDate: "2026-09-01"}},
		{"with seconds", FutureOrderRequest{PackageID: "p1", Quantity: 1, DueDate: "2026-09-01 10:00:00"}},
		{"slashes", FutureOrderRequest{PackageID: "p1", Quantity: 1, DueDate: "2026/09/01 10:00"}},
		{"share without option", FutureOrderRequest{PackageID: "p1", Quantity: 1, DueDate: "2026-09-01 10:00", ToEmail: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.FutureOrders.Create(context.Background(), tt.req); !errors.Is(err, apierr.ErrValidation) {
				t.Errorf("Create() error = %v, want validation error", err)
			}
		})
	}
}

func TestFutureOrder_CreateOmitsEmptyOptionalFields(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var gotBody []byte
	mock.SetHandler(SlugFutureOrders, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data":{"request_id":"f1"}}`))
	})

	c := newTestClient(t, mock)
	_, err := c.FutureOrders.Create(context.Background(), FutureOrderRequest{
		PackageID: "p1",
		Quantity:  2,
		DueDate:   "2026-09-01 10:00",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	for _, field := range []string{"description", "webhook_url", "to_email", "sharing_option", "copy_address", "brand_settings_name"} {
		if _, present := payload[field]; present {
			t.Errorf("empty optional field %q should be omitted from the payload", field)
		}
	}
	if payload["due_date"] != "2026-09-01 10:00" {
		t.Errorf("due_date = %v, want the literal value", payload["due_date"])
	}
}

func TestFutureOrder_CancelValidation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	c := newTestClient(t, mock)

	if _, err := c.FutureOrders.Cancel(context.Background(), CancelFutureOrderRequest{}); !errors.Is(err, apierr.ErrValidation) {
		t.Errorf("Cancel() error = %v, want validation error for empty request_ids", err)
	}
	req := CancelFutureOrderRequest{RequestIDs: []string{"r1", ""}}
	if _, err := c.FutureOrders.Cancel(context.Background(), req); !errors.Is(err, apierr.ErrValidation) {
		t.Errorf("Cancel() error = %v, want validation error for blank id", err)
	}
}

func TestFutureOrder_Cancel(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var gotBody []byte
	mock.SetHandler(SlugCancelFutureOrders, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data":{"cancelled":2}}`))
	})

	c := newTestClient(t, mock)
	envelope, err := c.FutureOrders.Cancel(context.Background(), CancelFutureOrderRequest{
		RequestIDs: []string{"r1", "r2"},
	})
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if envelope == nil {
		t.Fatal("Cancel() returned nil envelope")
	}

	var payload map[string][]string
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if len(payload["request_ids"]) != 2 {
		t.Errorf("request_ids = %v, want both ids", payload["request_ids"])
	}
}
