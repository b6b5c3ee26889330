// Package backend implements the single outgoing request pipeline shared by
// all resource clients, plus one thin client per backend resource. The
// pipeline attaches the bearer token from the session store, applies a fixed
// timeout, and reacts globally to authentication failure: any 401 clears the
// persisted session and fires the invalidation hook regardless of which
// client triggered the request. All other error statuses pass through to the
// caller unmodified.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
	"github.com/byway/web-gateway/internal/metrics"
)

const requestTimeout = 10 * time.Second

// APIError is a non-401 error status from the backend, passed through for
// local handling by the initiating screen.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Client is the configured pipeline. One instance is shared by every
// resource client.
type Client struct {
	baseURL          string
	http             *http.Client
	store            ports.SessionStore
	logger           zerolog.Logger
	onSessionInvalid func()
}

// NewClient builds the pipeline against the given backend origin
// (e.g. "https://api.byway.app/api").
func NewClient(baseURL string, store ports.SessionStore, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		store:   store,
		logger:  logger,
	}
}

// OnSessionInvalid registers the hook fired after a 401 has wiped the
// persisted session. Set once during composition, before any request.
func (c *Client) OnSessionInvalid(fn func()) {
	c.onSessionInvalid = fn
}

// do performs one round trip. path must start with "/"; query and body may be
// nil; when out is non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(encoded)
	} else {
		payload = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.store.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resource := resourceOf(path)
	started := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(resource).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(resource, "network").Inc()
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.BackendRequestsTotal.WithLabelValues(resource, "unauthorized").Inc()
		c.invalidateSession(ctx)
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrSessionExpired)
	}

	if resp.StatusCode >= 400 {
		metrics.BackendRequestsTotal.WithLabelValues(resource, "api_error").Inc()
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp)}
	}

	metrics.BackendRequestsTotal.WithLabelValues(resource, "ok").Inc()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// invalidateSession is the global 401 side effect: wipe the persisted
// session, then notify the application so the next guarded request lands on
// the login entry point.
func (c *Client) invalidateSession(ctx context.Context) {
	metrics.SessionInvalidationsTotal.Inc()
	if err := c.store.ClearSession(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session after 401")
	}
	if c.onSessionInvalid != nil {
		c.onSessionInvalid()
	}
	c.logger.Warn().Msg("backend rejected credentials, session cleared")
}

// Health pings the backend's health endpoint; used by the readiness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// decodeErrorMessage extracts the backend's error payload. The API emits
// either {"message": ...} or {"error": ...}; fall back to the raw body.
func decodeErrorMessage(resp *http.Response) string {
	var buf bytes.Buffer
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.TeeReader(resp.Body, &buf)).Decode(&envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	raw := strings.TrimSpace(buf.String())
	if raw == "" {
		return http.StatusText(resp.StatusCode)
	}
	return raw
}

// resourceOf maps "/Courses/42/similar" to "Courses" for metric labels.
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
