// Package api is the uniform client for the remote commerce backend. Every
// call attaches the caller's bearer token when present and maps transport and
// HTTP failures onto the storefront error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

const idempotencyHeader = "Idempotency-Key"

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues JSON requests against the backend REST API.
type Client struct {
	base   *url.URL
	client HTTPClient
}

// New constructs a backend client rooted at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("api: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		base:   parsed,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// NewWithHTTPClient is like New but injects the HTTP client, primarily for tests.
func NewWithHTTPClient(baseURL string, client HTTPClient) (*Client, error) {
	c, err := New(baseURL, 0)
	if err != nil {
		return nil, err
	}
	if client != nil {
		c.client = client
	}
	return c, nil
}

// Get issues a GET and decodes the response body into out when non-nil.
func (c *Client) Get(ctx context.Context, endpoint, token string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, token, nil, out)
}

// Post issues a POST with a JSON body. Mutating calls carry a fresh
// idempotency key so backend-side retries stay safe.
func (c *Client) Post(ctx context.Context, endpoint, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, token, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, endpoint, token, body, out)
}

// Delete issues a DELETE and decodes the response body into out when non-nil.
func (c *Client) Delete(ctx context.Context, endpoint, token string, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, token, nil, out)
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	target := c.resolve(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method == http.MethodPost || method == http.MethodPut || method == http.MethodDelete {
		req.Header.Set(idempotencyHeader, uuid.NewString())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, err, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, err, "decode response")
	}
	return nil
}

func (c *Client) resolve(endpoint string) string {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return c.base.String() + endpoint
	}
	resolved := *c.base
	resolved.Path = joinPath(c.base.Path, ref.Path)
	resolved.RawQuery = ref.RawQuery
	return resolved.String()
}

func joinPath(base, p string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func errorFromResponse(resp *http.Response) error {
	msg := drainMessage(resp.Body)
	statusErr := fmt.Errorf("backend status %d: %s", resp.StatusCode, msg)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.Wrap(apperrors.CodeUnauthenticated, statusErr, "session expired or invalid")
	case http.StatusNotFound:
		return apperrors.Wrap(apperrors.CodeNotFound, statusErr, "not found")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		public := msg
		if public == "" {
			public = "request rejected"
		}
		return apperrors.Wrap(apperrors.CodeValidation, statusErr, public)
	default:
		return apperrors.Wrap(apperrors.CodeUpstream, statusErr, "backend request failed")
	}
}

// drainMessage extracts a short human-readable message from an error body.
// The backend is inconsistent here: some endpoints wrap errors in an envelope,
// others return a bare message field or plain text.
func drainMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 2048))
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if len(trimmed) > 256 {
		trimmed = trimmed[:256]
	}
	return trimmed
}
