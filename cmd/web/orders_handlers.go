package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/notify"
	"gidiparts.ng/gidiparts-web/internal/orders"
)

func (app *application) handleOrdersList(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	list, err := app.orders.List(r.Context(), ws.Token())
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, list)
}

func (app *application) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	order, err := app.orders.Get(r.Context(), ws.Token(), chi.URLParam(r, "orderID"))
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, order)
}

type returnSubmission struct {
	OrderItemID string   `json:"orderItemId"`
	Reason      string   `json:"reason"`
	ImageURLs   []string `json:"imageUrls"`
}

func (app *application) handleSubmitReturn(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var req returnSubmission
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	receipt, err := app.orders.SubmitReturn(r.Context(), ws.Token(), orders.ReturnRequest{
		OrderID:     chi.URLParam(r, "orderID"),
		OrderItemID: req.OrderItemID,
		Reason:      req.Reason,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	notify.Success(w, "Return submitted", "We will review your return request shortly.")
	app.writeJSON(w, http.StatusOK, receipt)
}

func (app *application) handleReturnsList(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	receipts, err := app.orders.ListReturns(r.Context(), ws.Token())
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, receipts)
}
