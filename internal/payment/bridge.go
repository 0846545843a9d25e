// Package payment integrates the hosted third-party payment widget. The
// storefront never touches raw payment instruments: it assembles the widget
// parameters, hands control to the provider's script, and relays the
// resulting transaction reference back into checkout.
package payment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

const referencePrefix = "GDP"

// Config parameterizes the bridge.
type Config struct {
	ScriptURL string
	PublicKey string
	Currency  string
	ProbeTTL  time.Duration
}

// WidgetConfig is everything the page needs to invoke the hosted widget.
type WidgetConfig struct {
	ScriptURL  string            `json:"scriptUrl"`
	PublicKey  string            `json:"publicKey"`
	Email      string            `json:"email"`
	AmountKobo int64             `json:"amountKobo"`
	Currency   string            `json:"currency"`
	Reference  string            `json:"reference"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Bridge gates widget opens on provider script availability. The script is
// probed lazily; a successful probe is remembered for the process lifetime,
// a failed one leaves the bridge disabled until a later open retries it.
type Bridge struct {
	cfg    Config
	client *http.Client

	mu     sync.Mutex
	loaded bool
}

func New(cfg Config) *Bridge {
	if cfg.ProbeTTL <= 0 {
		cfg.ProbeTTL = 5 * time.Second
	}
	if cfg.Currency == "" {
		cfg.Currency = "NGN"
	}
	return &Bridge{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.ProbeTTL},
	}
}

// Open validates availability and returns the widget invocation parameters.
// The reference is taken from the checkout session when present, otherwise
// generated locally.
func (b *Bridge) Open(ctx context.Context, email string, amountKobo int64, reference string, metadata map[string]string) (WidgetConfig, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return WidgetConfig{}, apperrors.New(apperrors.CodeValidation, "an email address is required for payment")
	}
	if amountKobo <= 0 {
		return WidgetConfig{}, apperrors.New(apperrors.CodeValidation, "payment amount must be positive")
	}
	if err := b.ensureScript(ctx); err != nil {
		return WidgetConfig{}, err
	}
	if strings.TrimSpace(reference) == "" {
		reference = NewReference(time.Now().UTC())
	}
	return WidgetConfig{
		ScriptURL:  b.cfg.ScriptURL,
		PublicKey:  b.cfg.PublicKey,
		Email:      email,
		AmountKobo: amountKobo,
		Currency:   b.cfg.Currency,
		Reference:  reference,
		Metadata:   metadata,
	}, nil
}

// Loaded reports whether the provider script has been confirmed reachable.
func (b *Bridge) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// ensureScript probes the provider script URL once. Success is cached so the
// widget is only verified a single time per process; failure is not cached,
// leaving the trigger disabled until a probe succeeds.
func (b *Bridge) ensureScript(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded {
		return nil
	}
	if strings.TrimSpace(b.cfg.ScriptURL) == "" {
		return apperrors.New(apperrors.CodeScriptUnavailable, "payment script URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, b.cfg.ScriptURL, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeScriptUnavailable, err, "payment script probe failed")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeScriptUnavailable, err, "payment script could not be loaded")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return apperrors.New(apperrors.CodeScriptUnavailable,
			fmt.Sprintf("payment script responded with status %d", resp.StatusCode))
	}

	b.loaded = true
	return nil
}

// NewReference generates a practically unique transaction reference:
// GDP-YYYYMMDD-<random suffix>.
func NewReference(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s-%s-%s", referencePrefix, now.Format("20060102"), suffix)
}
