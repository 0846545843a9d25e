package health

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Component statuses reported by the checker.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

// Summary is the storefront's view of its own dependencies.
type Summary struct {
	Status     string      `json:"status"`
	CheckedAt  time.Time   `json:"checkedAt"`
	Components []Component `json:"components"`
}

// Component reports one dependency.
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// ScriptState reports whether the hosted payment script has been reachable.
type ScriptState interface {
	Loaded() bool
}

// Checker probes the commerce backend and reports overall storefront health.
// Probe results are cached so the endpoint cannot be used to hammer the
// backend.
type Checker struct {
	backendURL string
	script     ScriptState
	client     *http.Client
	ttl        time.Duration

	mu     sync.Mutex
	cached Summary
	expiry time.Time
}

func NewChecker(backendURL string, script ScriptState, ttl time.Duration) *Checker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Checker{
		backendURL: strings.TrimRight(strings.TrimSpace(backendURL), "/"),
		script:     script,
		client:     &http.Client{Timeout: 5 * time.Second},
		ttl:        ttl,
	}
}

// SetHTTPClient replaces the probe client, for tests.
func (c *Checker) SetHTTPClient(client *http.Client) {
	c.client = client
}

// Check returns the current summary, probing at most once per TTL window.
func (c *Checker) Check(ctx context.Context) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Before(c.expiry) {
		return c.cached
	}

	summary := Summary{Status: StatusOK, CheckedAt: now}
	summary.Components = append(summary.Components, c.probeBackend(ctx))
	summary.Components = append(summary.Components, c.scriptComponent())
	for _, comp := range summary.Components {
		if comp.Status == StatusDown {
			summary.Status = StatusDegraded
		}
	}

	c.cached = summary
	c.expiry = now.Add(c.ttl)
	return summary
}

func (c *Checker) probeBackend(ctx context.Context) Component {
	comp := Component{Name: "commerce-api", Status: StatusOK}
	if c.backendURL == "" {
		comp.Status = StatusDown
		comp.Detail = "backend url not configured"
		return comp
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.backendURL+"/health", nil)
	if err != nil {
		comp.Status = StatusDown
		comp.Detail = err.Error()
		return comp
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		comp.Status = StatusDown
		comp.Detail = "unreachable"
		return comp
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		comp.Status = StatusDown
		comp.Detail = resp.Status
	}
	return comp
}

func (c *Checker) scriptComponent() Component {
	comp := Component{Name: "payment-script", Status: StatusOK}
	if c.script == nil || !c.script.Loaded() {
		// not yet probed or last probe failed; checkout will retry
		comp.Status = StatusDegraded
		comp.Detail = "not loaded"
	}
	return comp
}
