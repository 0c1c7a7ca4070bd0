// Package api is the HTTP client the reading and editing controllers use to
// reach the quietpage service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

const maxResponseBytes = 8 << 20

// Tokens is an access/refresh token pair.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRetries sets how often idempotent reads are retried on transient
// failures. Zero disables retries.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

// Client talks JSON to the REST API. It keeps the session tokens and
// refreshes them once when a request comes back 401.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
	retries uint64

	mu        sync.RWMutex
	tokens    Tokens
	onRefresh func(Tokens)
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     slog.Default(),
		retries: 2,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "api")
	return c
}

// SetTokens installs the tokens used for authenticated requests.
func (c *Client) SetTokens(t Tokens) {
	c.mu.Lock()
	c.tokens = t
	c.mu.Unlock()
}

// Tokens returns the current tokens.
func (c *Client) Tokens() Tokens {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// OnRefresh registers fn to be called with the new pair after a transparent
// token refresh.
func (c *Client) OnRefresh(fn func(Tokens)) {
	c.mu.Lock()
	c.onRefresh = fn
	c.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

type request struct {
	method string
	path   string
	body   any
	out    any
	// anonymous requests carry no bearer token and are never refreshed.
	anonymous bool
}

func (c *Client) do(ctx context.Context, r request) error {
	var payload []byte
	if r.body != nil {
		var err error
		payload, err = json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
	}

	err := c.send(ctx, r, payload)
	if r.anonymous || !errors.Is(err, errUnauthorizedStatus) {
		return err
	}

	// The access token expired: rotate once and replay.
	if rerr := c.refresh(ctx); rerr != nil {
		c.log.DebugContext(ctx, "token refresh failed", slog.String("error", rerr.Error()))
		return err
	}
	return c.send(ctx, r, payload)
}

// send performs one logical request. GETs are retried with exponential
// backoff on network errors and 5xx responses.
func (c *Client) send(ctx context.Context, r request, payload []byte) error {
	op := func() error {
		err := c.roundTrip(ctx, r, payload)
		var se *statusError
		if errors.As(err, &se) && se.status < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}

	if r.method != http.MethodGet || c.retries == 0 {
		err := op()
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxElapsedTime = 0
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx))
}

func (c *Client) roundTrip(ctx context.Context, r request, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !r.anonymous {
		if tok := c.Tokens().Access; tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", r.method, r.path, err)
	}

	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if r.out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, r.out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) refresh(ctx context.Context) error {
	current := c.Tokens()
	if current.Refresh == "" {
		return errors.New("no refresh token")
	}

	var resp wire.AuthResponse
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/refresh",
		body:      wire.RefreshRequest{RefreshToken: current.Refresh},
		out:       &resp,
		anonymous: true,
	})
	if err != nil {
		return err
	}

	next := Tokens{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	c.mu.Lock()
	c.tokens = next
	fn := c.onRefresh
	c.mu.Unlock()
	if fn != nil {
		fn(next)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var errUnauthorizedStatus = errors.New("status 401")

// statusError is a non-2xx response. It unwraps to the domain error matching
// the status code.
type statusError struct {
	status int
	body   wire.Error
	err    error
}

func (e *statusError) Error() string {
	msg := e.body.Error
	if msg == "" {
		msg = http.StatusText(e.status)
	}
	return fmt.Sprintf("api: status %d: %s", e.status, msg)
}

func (e *statusError) Unwrap() []error {
	if e.status == http.StatusUnauthorized {
		return []error{e.err, errUnauthorizedStatus}
	}
	return []error{e.err}
}

func decodeError(status int, raw []byte) error {
	var body wire.Error
	_ = json.Unmarshal(raw, &body)

	se := &statusError{status: status, body: body}
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		fields := make([]domain.FieldError, 0, len(body.Fields))
		for _, f := range body.Fields {
			fields = append(fields, domain.FieldError{Field: f.Field, Message: f.Message})
		}
		if len(fields) == 0 {
			fields = append(fields, domain.FieldError{Field: "request", Message: body.Error})
		}
		se.err = domain.NewValidationErrors(fields)
	case http.StatusUnauthorized:
		reason := body.Reason
		if reason == "" {
			reason = body.Error
		}
		se.err = domain.NewAuthError(reason, nil)
	case http.StatusForbidden:
		se.err = domain.ErrForbidden
	case http.StatusNotFound:
		se.err = domain.ErrNotFound
	case http.StatusConflict:
		se.err = domain.ErrConflict
	default:
		se.err = fmt.Errorf("server error %d", status)
	}
	return se
}
