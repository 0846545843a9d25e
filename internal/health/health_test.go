package health_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/health"
)

type scriptStub struct{ loaded bool }

func (s scriptStub) Loaded() bool { return s.loaded }

func TestCheckReportsHealthyBackend(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	checker := health.NewChecker(ts.URL, scriptStub{loaded: true}, time.Minute)
	summary := checker.Check(context.Background())

	require.Equal(t, health.StatusOK, summary.Status)
	require.Len(t, summary.Components, 2)
	for _, comp := range summary.Components {
		require.Equal(t, health.StatusOK, comp.Status, comp.Name)
	}
}

func TestCheckDegradesWhenBackendDown(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	checker := health.NewChecker(ts.URL, scriptStub{loaded: true}, time.Minute)
	summary := checker.Check(context.Background())

	require.Equal(t, health.StatusDegraded, summary.Status)
	require.Equal(t, health.StatusDown, summary.Components[0].Status)
}

func TestColdPaymentScriptDoesNotFailOverall(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	checker := health.NewChecker(ts.URL, scriptStub{loaded: false}, time.Minute)
	summary := checker.Check(context.Background())

	require.Equal(t, health.StatusOK, summary.Status)
	require.Equal(t, health.StatusDegraded, summary.Components[1].Status)
}

func TestCheckCachesProbes(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	checker := health.NewChecker(ts.URL, scriptStub{loaded: true}, time.Minute)
	checker.Check(context.Background())
	checker.Check(context.Background())
	checker.Check(context.Background())

	require.Equal(t, int32(1), hits.Load())
}

func TestCheckWithoutBackendURL(t *testing.T) {
	t.Parallel()

	checker := health.NewChecker("", scriptStub{loaded: true}, time.Minute)
	summary := checker.Check(context.Background())

	require.Equal(t, health.StatusDegraded, summary.Status)
	require.Equal(t, health.StatusDown, summary.Components[0].Status)
}
