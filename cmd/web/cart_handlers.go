package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
	"gidiparts.ng/gidiparts-web/internal/cart"
	"gidiparts.ng/gidiparts-web/internal/format"
	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/notify"
)

type cartView struct {
	CartID    string         `json:"cartId,omitempty"`
	Lines     []cartLineView `json:"lines"`
	Subtotal  string         `json:"subtotal"`
	Tax       string         `json:"tax"`
	Shipping  string         `json:"shipping"`
	Total     string         `json:"total"`
	TotalKobo int64          `json:"totalKobo"`
	Estimated bool           `json:"estimated"`
	Count     int            `json:"count"`
}

type cartLineView struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"lineTotal"`
}

func (app *application) cartView(snap cart.Snapshot) cartView {
	currency := app.cfg.Payment.Currency
	view := cartView{
		CartID:    snap.CartID,
		Lines:     make([]cartLineView, 0, len(snap.Lines)),
		Subtotal:  format.Money(snap.Summary.SubtotalKobo, currency),
		Tax:       format.Money(snap.Summary.TaxKobo, currency),
		Shipping:  format.Money(snap.Summary.ShippingKobo, currency),
		Total:     format.Money(snap.Summary.TotalKobo, currency),
		TotalKobo: snap.Summary.TotalKobo,
		Estimated: snap.Summary.Estimated,
	}
	for _, line := range snap.Lines {
		view.Count += line.Quantity
		view.Lines = append(view.Lines, cartLineView{
			ID:        line.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
			UnitPrice: format.Money(line.UnitPriceKobo, currency),
			Quantity:  line.Quantity,
			LineTotal: format.Money(line.UnitPriceKobo*int64(line.Quantity), currency),
		})
	}
	return view
}

func (app *application) handleCartGet(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	snap, err := app.cart.Get(r.Context(), ws)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, app.cartView(snap))
}

type cartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (app *application) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var req cartAddRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	snap, err := app.cart.Add(r.Context(), ws, req.ProductID, req.Quantity)
	if err != nil {
		// anonymous shoppers get sent to the login page instead of a toast
		if apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
			middleware.RedirectToLogin(w, r)
			return
		}
		app.writeError(w, r, err)
		return
	}

	notify.Success(w, "Added to cart", "Item added to your cart.")
	app.writeJSON(w, http.StatusOK, app.cartView(snap))
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (app *application) handleCartUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	lineID := chi.URLParam(r, "lineID")

	var req cartQuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		// also accept ?quantity= for form-driven steppers
		q, convErr := strconv.Atoi(r.URL.Query().Get("quantity"))
		if convErr != nil {
			app.writeError(w, r, err)
			return
		}
		req.Quantity = q
	}

	snap, err := app.cart.UpdateQuantity(ws, lineID, req.Quantity)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, app.cartView(snap))
}

func (app *application) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	lineID := chi.URLParam(r, "lineID")

	snap, err := app.cart.Remove(r.Context(), ws, lineID)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	notify.Success(w, "Removed", "Item removed from your cart.")
	app.writeJSON(w, http.StatusOK, app.cartView(snap))
}

func (app *application) handleCartClear(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	snap, err := app.cart.Clear(r.Context(), ws)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, app.cartView(snap))
}
