package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/webstore"
)

func newSessions(t *testing.T) *middleware.Sessions {
	t.Helper()
	return middleware.NewSessions(middleware.SessionOptions{
		CookieName: "TEST_SESSION",
		SigningKey: []byte("test-signing-key"),
		TTL:        time.Hour,
	}, zerolog.Nop())
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "TEST_SESSION" {
			return c
		}
	}
	return nil
}

func TestSessionsIssuesCookieToNewVisitor(t *testing.T) {
	t.Parallel()

	sessions := newSessions(t)
	handler := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := middleware.StoreFromContext(r.Context())
		require.NotEmpty(t, store.ID)
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.NotEmpty(t, cookie.Value)
}

func TestSessionsPersistsAcrossRequests(t *testing.T) {
	t.Parallel()

	sessions := newSessions(t)
	handler := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := middleware.StoreFromContext(r.Context())
		if r.URL.Path == "/set" {
			store.SetToken("tok-1")
		}
		_, _ = io.WriteString(w, store.Token())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookie := sessionCookie(rec.Result())
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)

	require.Equal(t, "tok-1", rec2.Body.String())
}

func TestSessionsDiscardsTamperedCookie(t *testing.T) {
	t.Parallel()

	sessions := newSessions(t)
	var gotToken string
	handler := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = middleware.StoreFromContext(r.Context()).Token()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "TEST_SESSION", Value: "garbage.value"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Empty(t, gotToken)
	// a fresh cookie replaces the bad one
	require.NotNil(t, sessionCookie(rec.Result()))
}

func TestSessionsRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	foreign := webstore.NewCodec([]byte("other-key"))
	store := webstore.NewStore()
	store.SetToken("forged")
	value, err := foreign.Encode(store)
	require.NoError(t, err)

	sessions := newSessions(t)
	var gotToken string
	handler := sessions.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = middleware.StoreFromContext(r.Context()).Token()
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "TEST_SESSION", Value: value})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Empty(t, gotToken)
}
