package middleware

import (
	"net/http"

	"gidiparts.ng/gidiparts-web/internal/account"
)

// Auth hydrates the signed-in user from the storage cookie. Expired tokens
// are cleared so downstream handlers see an anonymous request.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := StoreFromContext(r.Context())
		token := store.Token()
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !account.TokenAlive(token) {
			store.ClearAuth()
			next.ServeHTTP(w, r)
			return
		}
		u := &User{}
		if cached := store.User(); cached != nil {
			u.ID = cached.ID
			u.Email = cached.Email
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireAuth rejects anonymous requests. htmx requests get an HX-Redirect
// so the client navigates to the login page; everything else gets a 303.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectToLogin sends the client to the login page, using HX-Redirect for
// htmx requests so the browser performs a full navigation.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
