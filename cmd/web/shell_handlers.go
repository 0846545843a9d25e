package main

import (
	"net/http"

	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/nav"
)

// handleNav returns the navigation view model for the client shell, including
// the cart badge count from the locally cached snapshot.
func (app *application) handleNav(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	signedIn := middleware.UserFromContext(r.Context()) != nil

	count := 0
	if snap, err := app.cart.Get(r.Context(), ws); err == nil {
		for _, line := range snap.Lines {
			count += line.Quantity
		}
	}

	app.writeJSON(w, http.StatusOK, map[string]any{
		"items":       nav.Build(r.URL.Query().Get("path"), signedIn),
		"breadcrumbs": nav.Breadcrumbs(r.URL.Query().Get("path")),
		"cartCount":   count,
		"signedIn":    signedIn,
	})
}
