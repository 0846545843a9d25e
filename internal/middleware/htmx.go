package middleware

import "net/http"

// HTMX flags requests issued by the htmx runtime so handlers can decide
// between partial and full responses.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("HX-Request") == "true" {
			r = r.WithContext(WithHTMX(r.Context(), true))
		}
		next.ServeHTTP(w, r)
	})
}
