package main

import (
	"net/http"

	"gidiparts.ng/gidiparts-web/internal/checkout"
	"gidiparts.ng/gidiparts-web/internal/format"
	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/notify"
)

func (app *application) handleCheckoutStep(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	app.writeJSON(w, http.StatusOK, map[string]any{
		"step":         string(app.checkout.CurrentStep(ws)),
		"scriptLoaded": app.payment.Loaded(),
	})
}

func (app *application) handleDeliveryTiers(w http.ResponseWriter, r *http.Request) {
	currency := app.cfg.Payment.Currency
	tiers := checkout.DeliveryTiers()
	views := make([]map[string]any, 0, len(tiers))
	for _, tier := range tiers {
		views = append(views, map[string]any{
			"id":    tier.ID,
			"label": tier.Label,
			"fee":   format.Money(tier.FeeKobo, currency),
			"eta":   tier.ETA,
		})
	}
	app.writeJSON(w, http.StatusOK, views)
}

type shippingRequest struct {
	checkout.ShippingDetails
	Save bool `json:"save"`
}

func (app *application) handleCheckoutShipping(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var req shippingRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	if err := app.checkout.SubmitShipping(ws, req.ShippingDetails, req.Save); err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]any{
		"step": string(app.checkout.CurrentStep(ws)),
	})
}

func (app *application) handleCheckoutQuote(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	q := r.URL.Query()

	quote, err := app.checkout.EstimateQuote(r.Context(), ws, q.Get("tier"), q.Get("coupon"))
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	currency := app.cfg.Payment.Currency
	app.writeJSON(w, http.StatusOK, map[string]any{
		"subtotal":    format.Money(quote.Summary.SubtotalKobo, currency),
		"tax":         format.Money(quote.Summary.TaxKobo, currency),
		"delivery":    format.Money(quote.DeliveryFeeKobo, currency),
		"discount":    format.Money(quote.CouponKobo, currency),
		"payable":     format.Money(quote.PayableKobo, currency),
		"payableKobo": quote.PayableKobo,
		"coupon":      quote.Coupon,
		"estimated":   quote.Summary.Estimated,
	})
}

type sessionStartRequest struct {
	DeliveryTier string `json:"deliveryTier"`
	Coupon       string `json:"coupon"`
}

func (app *application) handleCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var req sessionStartRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	session, err := app.checkout.CreateSession(r.Context(), ws, req.DeliveryTier, req.Coupon)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": session.ID,
		"amount":    format.Money(session.AmountKobo, session.Currency),
		"step":      string(checkout.StepExternalPayment),
	})
}

func (app *application) handleCheckoutPayment(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	widget, err := app.checkout.BeginPayment(r.Context(), ws)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, http.StatusOK, widget)
}

type paymentCallbackRequest struct {
	Event     string `json:"event"`
	Reference string `json:"reference"`
}

// handlePaymentCallback receives the widget outcome posted by the browser.
// A close event abandons the attempt without touching cart or session.
func (app *application) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())

	var req paymentCallbackRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeError(w, r, err)
		return
	}

	if req.Event == "close" {
		step := app.checkout.CancelPayment(ws)
		notify.Error(w, "Payment cancelled", "Your cart is unchanged. You can try again when ready.")
		app.writeJSON(w, http.StatusOK, map[string]any{"step": string(step)})
		return
	}

	confirmation, err := app.checkout.CompletePayment(r.Context(), ws, req.Reference)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	notify.Success(w, "Order placed", "Your order has been confirmed.")
	app.writeJSON(w, http.StatusOK, map[string]any{
		"step":      string(checkout.StepOrderConfirmation),
		"orderId":   confirmation.OrderID,
		"reference": confirmation.Reference,
		"amount":    format.Money(confirmation.AmountKobo, app.cfg.Payment.Currency),
		"verified":  confirmation.Verified,
	})
}

func (app *application) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	ws := middleware.StoreFromContext(r.Context())
	if !ws.OrderConfirmed() {
		app.writeJSON(w, http.StatusOK, map[string]any{
			"step": string(app.checkout.CurrentStep(ws)),
		})
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]any{
		"step": string(checkout.StepOrderConfirmation),
	})
}
