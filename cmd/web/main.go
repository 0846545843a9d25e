package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gidiparts.ng/gidiparts-web/internal/account"
	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/cart"
	"gidiparts.ng/gidiparts-web/internal/checkout"
	"gidiparts.ng/gidiparts-web/internal/config"
	"gidiparts.ng/gidiparts-web/internal/health"
	"gidiparts.ng/gidiparts-web/internal/logging"
	"gidiparts.ng/gidiparts-web/internal/orders"
	"gidiparts.ng/gidiparts-web/internal/payment"
)

func main() {
	// .env is optional outside dev
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(logging.Options{
		ServiceName: "gidiparts-web",
		Level:       cfg.App.LogLevel,
		Console:     cfg.App.IsDev(),
	})

	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("api client")
	}

	cartStore, err := cart.NewStore(client, cart.Pricing{
		TaxRateBps:       cfg.Cart.TaxRateBps,
		FlatShippingKobo: cfg.Cart.FlatShippingKobo,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cart store")
	}

	bridge := payment.New(payment.Config{
		ScriptURL: cfg.Payment.ScriptURL,
		PublicKey: cfg.Payment.PublicKey,
		Currency:  cfg.Payment.Currency,
		ProbeTTL:  cfg.Payment.ProbeTTL,
	})

	orchestrator, err := checkout.NewOrchestrator(client, cartStore, bridge, cfg.Payment.AssumeSuccess)
	if err != nil {
		log.Fatal().Err(err).Msg("checkout orchestrator")
	}

	orderSvc, err := orders.NewService(client)
	if err != nil {
		log.Fatal().Err(err).Msg("orders service")
	}

	accountSvc, err := account.NewService(client)
	if err != nil {
		log.Fatal().Err(err).Msg("account service")
	}

	app := &application{
		cfg:      cfg,
		log:      log,
		cart:     cartStore,
		checkout: orchestrator,
		orders:   orderSvc,
		account:  accountSvc,
		payment:  bridge,
		health:   health.NewChecker(cfg.API.BaseURL, bridge, 30*time.Second),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("storefront listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown")
			_ = srv.Close()
		}
	}
}
