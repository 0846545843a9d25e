package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied to every environment variable consumed by the app.
const EnvPrefix = "GIDIPARTS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config is the full storefront configuration, loaded from the environment.
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Cart    CartConfig
	Payment PaymentConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"GIDIPARTS_APP_ENV" default:"dev"`
	Port     string `envconfig:"GIDIPARTS_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"GIDIPARTS_LOG_LEVEL" default:"info"`
	BaseURL  string `envconfig:"GIDIPARTS_BASE_URL" default:"http://localhost:8080"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points at the remote commerce backend that owns all business state.
type APIConfig struct {
	BaseURL string        `envconfig:"GIDIPARTS_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"GIDIPARTS_API_TIMEOUT" default:"8s"`
}

// SessionConfig controls the signed cookie that mirrors browser storage.
type SessionConfig struct {
	SigningKey string        `envconfig:"GIDIPARTS_SESSION_SIGNING_KEY"`
	CookieName string        `envconfig:"GIDIPARTS_SESSION_COOKIE" default:"GIDIPARTS_SESSION"`
	TTL        time.Duration `envconfig:"GIDIPARTS_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"GIDIPARTS_SESSION_SECURE" default:"false"`
}

// CartConfig drives the presentation-layer cart estimate. The backend
// recomputes authoritative totals during checkout.
type CartConfig struct {
	TaxRateBps       int64 `envconfig:"GIDIPARTS_CART_TAX_RATE_BPS" default:"750"`
	FlatShippingKobo int64 `envconfig:"GIDIPARTS_CART_FLAT_SHIPPING_KOBO" default:"150000"`
}

// PaymentConfig configures the hosted payment widget integration.
type PaymentConfig struct {
	PublicKey string        `envconfig:"GIDIPARTS_PAYMENT_PUBLIC_KEY"`
	ScriptURL string        `envconfig:"GIDIPARTS_PAYMENT_SCRIPT_URL" default:"https://js.paystack.co/v1/inline.js"`
	Currency  string        `envconfig:"GIDIPARTS_PAYMENT_CURRENCY" default:"NGN"`
	ProbeTTL  time.Duration `envconfig:"GIDIPARTS_PAYMENT_PROBE_TIMEOUT" default:"5s"`
	// AssumeSuccess preserves the legacy behavior of treating a failed
	// payment verification as a success. Test environments only.
	AssumeSuccess bool `envconfig:"GIDIPARTS_PAYMENT_ASSUME_SUCCESS" default:"false"`
}
