package airalo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/airalo-esim-client/internal/testutil"
	"github.com/Sternrassler/airalo-esim-client/pkg/apierr"
	"github.com/Sternrassler/airalo-esim-client/pkg/auth"
)

func TestOrders_CreateValidation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	c := newTestClient(t, mock)

	tests := []struct {
		name string
		req  OrderRequest
	}{
		{"missing package", OrderRequest{Quantity: 1}},
		{"zero quantity", OrderRequest{PackageID: "p1"}},
		{"negative quantity", OrderRequest{PackageID: "p1", Quantity: -1}},
		{"over limit", OrderRequest{PackageID: "p1", Quantity: OrderLimit + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Orders.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, apierr.ErrValidation)
		})
	}
}

func TestOrders_CreateDefaultsAndSignature(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var gotBody []byte
	var gotSignature string
	mock.SetHandler(SlugOrders, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(auth.SignatureHeader)
		w.Write([]byte(`{"data":{"id":42}}`))
	})

	c := newTestClient(t, mock)
	envelope, err := c.Orders.Create(context.Background(), OrderRequest{PackageID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.NotNil(t, envelope)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Equal(t, "sim", payload["type"], "type should default to sim")
	require.NotEmpty(t, payload["description"], "description should default")
	require.Equal(t, "p1", payload["package_id"])

	signer, err := auth.NewSigner("csecret")
	require.NoError(t, err)
	want, err := signer.Sign(gotBody)
	require.NoError(t, err)
	require.Equal(t, want, gotSignature, "signature must cover the exact request body")
}

func TestOrders_CreateSurfacesAPIError(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse(SlugOrders, testutil.NewErrorResponse(http.StatusUnprocessableEntity, `{"error":"package not found"}`))

	c := newTestClient(t, mock)
	_, err := c.Orders.Create(context.Background(), OrderRequest{PackageID: "gone", Quantity: 1})
	require.ErrorIs(t, err, apierr.ErrAPI)
	require.Contains(t, err.Error(), "422")
	require.Contains(t, err.Error(), "package not found")
}

func TestOrders_CreateWithEmailSimShareValidation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	c := newTestClient(t, mock)

	base := OrderRequest{PackageID: "p1", Quantity: 1}
	tests := []struct {
		name  string
		share EmailSimShare
	}{
		{"missing to_email", EmailSimShare{SharingOption: []string{"link"}}},
		{"bad email", EmailSimShare{ToEmail: "not-an-email", SharingOption: []string{"link"}}},
		{"missing sharing option", EmailSimShare{ToEmail: "a@b.com"}},
		{"invalid sharing option", EmailSimShare{ToEmail: "a@b.com", SharingOption: []string{"fax"}}},
		{"bad copy address", EmailSimShare{ToEmail: "a@b.com", SharingOption: []string{"pdf"}, CopyAddress: []string{"nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Orders.CreateWithEmailSimShare(context.Background(), base, tt.share)
			require.ErrorIs(t, err, apierr.ErrValidation)
		})
	}
}

func TestOrders_CreateWithEmailSimShareMergesPayload(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	var gotBody []byte
	mock.SetHandler(SlugOrders, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"data":{"id":1}}`))
	})

	c := newTestClient(t, mock)
	share := EmailSimShare{ToEmail: "a@b.com", SharingOption: []string{"link", "pdf"}}
	_, err := c.Orders.CreateWithEmailSimShare(context.Background(), OrderRequest{PackageID: "p1", Quantity: 1}, share)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Equal(t, "a@b.com", payload["to_email"])
	require.Equal(t, "p1", payload["package_id"])
}

func TestOrders_CreateAsyncRequires202(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse(SlugOrdersAsync, testutil.NewDataResponse(`{"data":{"request_id":"r1"}}`))

	c := newTestClient(t, mock)
	// 200 from the async endpoint is a contract violation.
	_, err := c.Orders.CreateAsync(context.Background(), OrderRequest{PackageID: "p1", Quantity: 1})
	require.ErrorIs(t, err, apierr.ErrAPI)

	mock.SetResponse(SlugOrdersAsync, testutil.MockResponse{
		StatusCode: http.StatusAccepted,
		Body:       `{"data":{"request_id":"r1"}}`,
	})
	envelope, err := c.Orders.CreateAsync(context.Background(), OrderRequest{PackageID: "p1", Quantity: 1})
	require.NoError(t, err)
	require.NotNil(t, envelope)
}

func TestOrders_CreateBulk(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetHandler(SlugOrders, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req OrderRequest
		json.Unmarshal(body, &req)
		switch req.PackageID {
		case "bad":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"no stock"}`))
		case "garbled":
			w.Write([]byte("not-json"))
		default:
			w.Write([]byte(`{"data":{"id":7}}`))
		}
	})

	c := newTestClient(t, mock)
	results, err := c.Orders.CreateBulk(context.Background(), []BulkOrderItem{
		{PackageID: "ok", Quantity: 1},
		{PackageID: "bad", Quantity: 1},
		{PackageID: "garbled", Quantity: 1},
	}, "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results["ok"].Err)
	require.NotNil(t, results["ok"].Envelope)

	require.ErrorIs(t, results["bad"].Err, apierr.ErrAPI)
	require.Contains(t, results["bad"].Err.Error(), "no stock")

	require.Error(t, results["garbled"].Err, "parse failures stay per item")
}

func TestOrders_CreateBulkValidation(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	c := newTestClient(t, mock)

	_, err := c.Orders.CreateBulk(context.Background(), nil, "")
	require.ErrorIs(t, err, apierr.ErrValidation)

	tooMany := make([]BulkOrderItem, BulkOrderLimit+1)
	for i := range tooMany {
		tooMany[i] = BulkOrderItem{PackageID: "p", Quantity: 1}
	}
	_, err = c.Orders.CreateBulk(context.Background(), tooMany, "")
	require.ErrorIs(t, err, apierr.ErrValidation)
}
