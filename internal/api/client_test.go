package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	client, err := api.New(ts.URL, time.Second)
	require.NoError(t, err)
	return client
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Post(context.Background(), "/cart/items", "tok-1", map[string]any{"x": 1}, nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	require.Equal(t, "application/json", got.Get("Content-Type"))
	require.NotEmpty(t, got.Get("Idempotency-Key"))
}

func TestGetCarriesNoIdempotencyKey(t *testing.T) {
	t.Parallel()

	var got http.Header
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("{}"))
	}))

	require.NoError(t, client.Get(context.Background(), "/orders", "", nil))
	require.Empty(t, got.Get("Idempotency-Key"))
	require.Empty(t, got.Get("Authorization"))
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		code   apperrors.Code
	}{
		{"unauthorized", http.StatusUnauthorized, "", apperrors.CodeUnauthenticated},
		{"forbidden", http.StatusForbidden, "", apperrors.CodeUnauthenticated},
		{"not found", http.StatusNotFound, "", apperrors.CodeNotFound},
		{"bad request", http.StatusBadRequest, `{"message":"bad qty"}`, apperrors.CodeValidation},
		{"unprocessable", http.StatusUnprocessableEntity, "", apperrors.CodeValidation},
		{"server error", http.StatusInternalServerError, "", apperrors.CodeUpstream},
		{"bad gateway", http.StatusBadGateway, "", apperrors.CodeUpstream},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			err := client.Get(context.Background(), "/x", "tok", nil)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code), "want %s got %v", tc.code, err)
		})
	}
}

func TestValidationMessageSurfacesFromEnvelope(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"QTY","message":"quantity too large"}}`))
	}))

	err := client.Post(context.Background(), "/cart/items", "tok", map[string]any{}, nil)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.CodeValidation, appErr.Code())
	require.Equal(t, "quantity too large", appErr.Message())
}

func TestUnreachableBackendIsUpstream(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	client, err := api.New(url, 200*time.Millisecond)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/cart", "tok", nil)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUpstream))
}

func TestBaseURLRequired(t *testing.T) {
	t.Parallel()

	_, err := api.New("  ", time.Second)
	require.Error(t, err)
}
