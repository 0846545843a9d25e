package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gidiparts.ng/gidiparts-web/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIDIPARTS_API_BASE_URL", "http://backend.local")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.App.Env)
	require.True(t, cfg.App.IsDev())
	require.Equal(t, "8080", cfg.App.Port)
	require.Equal(t, "http://backend.local", cfg.API.BaseURL)
	require.Equal(t, 8*time.Second, cfg.API.Timeout)
	require.Equal(t, "GIDIPARTS_SESSION", cfg.Session.CookieName)
	require.Equal(t, int64(750), cfg.Cart.TaxRateBps)
	require.Equal(t, "NGN", cfg.Payment.Currency)
	require.False(t, cfg.Payment.AssumeSuccess)
}

func TestLoadRequiresAPIBaseURL(t *testing.T) {
	// t.Setenv registers the restore; the unset makes the key truly absent
	t.Setenv("GIDIPARTS_API_BASE_URL", "")
	require.NoError(t, os.Unsetenv("GIDIPARTS_API_BASE_URL"))

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GIDIPARTS_API_BASE_URL", "http://backend.local")
	t.Setenv("GIDIPARTS_APP_ENV", "prod")
	t.Setenv("GIDIPARTS_PAYMENT_ASSUME_SUCCESS", "true")
	t.Setenv("GIDIPARTS_CART_TAX_RATE_BPS", "500")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.App.IsProd())
	require.True(t, cfg.Payment.AssumeSuccess)
	require.Equal(t, int64(500), cfg.Cart.TaxRateBps)
}
