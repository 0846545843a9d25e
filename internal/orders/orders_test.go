package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/orders"
)

func newService(t *testing.T, handler http.Handler) *orders.Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := api.New(ts.URL, 0)
	require.NoError(t, err)
	svc, err := orders.NewService(client)
	require.NoError(t, err)
	return svc
}

func TestGetNormalizesStatusShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare string", `"SHIPPED"`, "shipped"},
		{"nested name", `{"name":"Delivered"}`, "delivered"},
		{"nested status", `{"status":"processing"}`, "processing"},
		{"empty object", `{}`, "unknown"},
		{"null", `null`, "unknown"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/orders/ord-1", r.URL.Path)
				_, _ = w.Write([]byte(`{"id":"ord-1","status":` + tc.raw + `,"totalKobo":5000}`))
			}))

			order, err := svc.Get(context.Background(), "tok-1", "ord-1")
			require.NoError(t, err)
			require.Equal(t, tc.want, order.Status)
			require.NotNil(t, order.Products)
			require.NotNil(t, order.Items)
		})
	}
}

func TestListRequiresToken(t *testing.T) {
	t.Parallel()

	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without a token")
	}))

	_, err := svc.List(context.Background(), "")
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthenticated))
}

func TestListNormalizesEveryOrder(t *testing.T) {
	t.Parallel()

	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"id":"ord-1","status":"pending"},
			{"id":"ord-2","status":{"name":"SHIPPED"}}
		]`))
	}))

	list, err := svc.List(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "pending", list[0].Status)
	require.Equal(t, "shipped", list[1].Status)
	require.NotNil(t, list[0].Products)
}

func TestResolveProduct(t *testing.T) {
	t.Parallel()

	order := &orders.Order{
		ID: "ord-1",
		Products: []orders.Product{
			{ID: "prod-1", Name: "Oil filter"},
		},
	}

	product, err := orders.ResolveProduct(order, "prod-1")
	require.NoError(t, err)
	require.Equal(t, "Oil filter", product.Name)

	_, err = orders.ResolveProduct(order, "prod-404")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestSubmitReturn(t *testing.T) {
	t.Parallel()

	svc := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/ord-1/returns", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "item-1", body["orderItemId"])
		require.Equal(t, "arrived damaged", body["reason"])

		_, _ = w.Write([]byte(`{"id":"ret-1","status":"submitted"}`))
	}))

	receipt, err := svc.SubmitReturn(context.Background(), "tok-1", orders.ReturnRequest{
		OrderID:     "ord-1",
		OrderItemID: "item-1",
		Reason:      "arrived damaged",
	})
	require.NoError(t, err)
	require.Equal(t, "ret-1", receipt.ID)
	require.Equal(t, "submitted", receipt.Status)
}
