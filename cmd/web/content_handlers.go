package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gidiparts.ng/gidiparts-web/internal/content"
	"gidiparts.ng/gidiparts-web/internal/format"
)

func (app *application) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := content.Load(chi.URLParam(r, "slug"))
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]any{
		"slug":    page.Slug,
		"title":   page.Title,
		"summary": page.Summary,
		"updated": format.Date(page.UpdatedAt),
		"html":    page.HTML,
	})
}
