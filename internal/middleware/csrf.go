package middleware

import (
	"crypto/subtle"
	"net/http"
)

// CSRFHeader carries the session token on mutating ajax requests.
const CSRFHeader = "X-CSRF-Token"

var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// CSRF verifies that mutating requests carry the session's CSRF token,
// either as a header or as a form field named csrf_token.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if safeMethods[r.Method] {
			next.ServeHTTP(w, r)
			return
		}
		store := StoreFromContext(r.Context())
		sent := r.Header.Get(CSRFHeader)
		if sent == "" {
			sent = r.PostFormValue("csrf_token")
		}
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(store.CSRFToken)) != 1 {
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
