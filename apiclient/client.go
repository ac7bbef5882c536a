// Package apiclient is the typed client of the remote diet API.
//
// One Client is built at startup; every browser session binds its own view
// with Bind so that bearer tokens and the 401 policy stay per session while
// the connection pool is shared.
package apiclient

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

	"nutrirec-web/models"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 1 << 20
)

// Config holds the connection settings of the remote API
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPTransport replaces the base transport, mostly for tests
func WithHTTPTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTokenStore binds a token store at construction time
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

// WithUnauthorizedHandler registers the hook run after a 401 cleared the token
func WithUnauthorizedHandler(fn UnauthorizedFunc) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// Client talks to the remote API. Use the service fields for typed calls.
type Client struct {
	baseURL        string
	timeout        time.Duration
	base           http.RoundTripper
	tokens         TokenStore
	onUnauthorized UnauthorizedFunc
	logger         *zap.Logger
	http           *http.Client

	Auth            *AuthService
	Foods           *FoodService
	Recommendations *RecommendationService
	MealPlanning    *MealPlanningService
	Users           *UserService
}

// New builds a client. An empty BaseURL or Timeout falls back to the defaults.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		base:    http.DefaultTransport,
		tokens:  noTokens{},
		logger:  zap.NewNop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	c.init()
	return c
}

func (c *Client) init() {
	c.http = &http.Client{
		Timeout:   c.timeout,
		Transport: chain(c.base, c.tokens, c.onUnauthorized, c.logger),
	}
	c.Auth = &AuthService{c: c}
	c.Foods = &FoodService{c: c}
	c.Recommendations = &RecommendationService{c: c}
	c.MealPlanning = &MealPlanningService{c: c}
	c.Users = &UserService{c: c}
}

// Bind returns a client for one session. It shares the base transport
// with c but reads and clears tokens in tokens, and runs hook on 401.
func (c *Client) Bind(tokens TokenStore, hook UnauthorizedFunc) *Client {
	if tokens == nil {
		tokens = noTokens{}
	}
	bound := &Client{
		baseURL:        c.baseURL,
		timeout:        c.timeout,
		base:           c.base,
		tokens:         tokens,
		onUnauthorized: hook,
		logger:         c.logger,
	}
	bound.init()
	return bound
}

// BaseURL returns the API root all paths are resolved against
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens returns the token store the client reads from
func (c *Client) Tokens() TokenStore { return c.tokens }

// Get performs a GET on path and decodes the JSON reply into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the reply into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the reply into out
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (*models.HealthCheckResponse, error) {
	var out models.HealthCheckResponse
	if err := c.Get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Remote API unreachable",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &APIError{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("Remote API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newStatusError(method, path, resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s %s reply: %w", method, path, err)
	}
	return nil
}
