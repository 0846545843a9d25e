package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"gidiparts.ng/gidiparts-web/internal/account"
	"gidiparts.ng/gidiparts-web/internal/cart"
	"gidiparts.ng/gidiparts-web/internal/checkout"
	"gidiparts.ng/gidiparts-web/internal/config"
	"gidiparts.ng/gidiparts-web/internal/health"
	"gidiparts.ng/gidiparts-web/internal/middleware"
	"gidiparts.ng/gidiparts-web/internal/orders"
	"gidiparts.ng/gidiparts-web/internal/payment"
)

type application struct {
	cfg      *config.Config
	log      zerolog.Logger
	cart     *cart.Store
	checkout *checkout.Orchestrator
	orders   *orders.Service
	account  *account.Service
	payment  *payment.Bridge
	health   *health.Checker
}

func (app *application) routes() http.Handler {
	sessions := middleware.NewSessions(middleware.SessionOptions{
		CookieName: app.cfg.Session.CookieName,
		SigningKey: []byte(app.cfg.Session.SigningKey),
		TTL:        app.cfg.Session.TTL,
		Secure:     app.cfg.Session.Secure,
	}, app.log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.HTMX)
	r.Use(sessions.Handler)
	r.Use(middleware.Auth)
	r.Use(middleware.CSRF)
	r.Use(middleware.Logger(app.log))

	r.Get("/healthz", app.handleHealth)
	r.Get("/nav", app.handleNav)

	r.Post("/login", app.handleLogin)
	r.Post("/register", app.handleRegister)
	r.Post("/logout", app.handleLogout)
	r.Post("/password/forgot", app.handleForgotPassword)
	r.Post("/password/reset", app.handleResetPassword)

	r.Get("/pages/{slug}", app.handlePage)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", app.handleCartGet)
		r.Post("/items", app.handleCartAdd)
		r.Patch("/items/{lineID}", app.handleCartUpdateQuantity)
		r.Delete("/items/{lineID}", app.handleCartRemove)
		r.Post("/clear", app.handleCartClear)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", app.handleCheckoutStep)
		r.Get("/delivery-tiers", app.handleDeliveryTiers)
		r.Post("/shipping", app.handleCheckoutShipping)
		r.Get("/quote", app.handleCheckoutQuote)
		r.With(middleware.RequireAuth).Group(func(r chi.Router) {
			r.Post("/session", app.handleCheckoutSession)
			r.Post("/payment", app.handleCheckoutPayment)
			r.Post("/payment/callback", app.handlePaymentCallback)
			r.Get("/confirmation", app.handleConfirmation)
		})
	})

	r.With(middleware.RequireAuth).Group(func(r chi.Router) {
		r.Get("/orders", app.handleOrdersList)
		r.Get("/orders/{orderID}", app.handleOrderGet)
		r.Post("/orders/{orderID}/returns", app.handleSubmitReturn)
		r.Get("/returns", app.handleReturnsList)
		r.Put("/account/profile", app.handleUpdateProfile)
	})

	return r
}

func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	summary := app.health.Check(r.Context())
	status := http.StatusOK
	if summary.Status != health.StatusOK {
		status = http.StatusServiceUnavailable
	}
	app.writeJSON(w, status, summary)
}
