package client

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

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/tankmate-go/internal/core/apierror"
	"github.com/yndnr/tankmate-go/internal/infra/tlsroots"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
	"github.com/yndnr/tankmate-go/internal/telemetry/metric"
)

// TokenSource supplies the bearer token; "" means unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client talks to the Tankmate API.
type Client struct {
	cfg     Config
	root    string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	cache   *queryCache
	log     logger.Logger
	metrics *metric.Registry

	onUnauthorized func(ctx context.Context)
	sleep          func(ctx context.Context, d time.Duration) error
	maxBody        int64
}

// ErrResponseTooLarge is the cause of a TransportError for a response body
// over the size limit.
var ErrResponseTooLarge = errors.New("response too large")

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithMetrics records request metrics on r.
func WithMetrics(r *metric.Registry) Option {
	return func(c *Client) {
		c.metrics = r
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUnauthorizedHandler is called on every 401 response, before the error is returned.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// withMaxBody lowers the response size limit in tests.
func withMaxBody(n int64) Option {
	return func(c *Client) {
		c.maxBody = n
	}
}

// withSleep replaces the retry back-off sleep in tests.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = fn
	}
}

// New creates a client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tankmate-cli"
	}

	c := &Client{
		cfg:   cfg,
		root:  cfg.APIRoot(),
		http:  &http.Client{Timeout: cfg.Timeout},
		log:     logger.Nop(),
		sleep:   sleepContext,
		maxBody: maxResponseBytes,
	}
	if cfg.CAFile != "" || cfg.InsecureSkipVerify {
		tlsCfg, err := tlsroots.ClientConfig(cfg.CAFile, cfg.InsecureSkipVerify)
		if err != nil {
			return nil, fmt.Errorf("client: %w", err)
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = tlsCfg
		c.http.Transport = tr
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	if cfg.CacheTTL > 0 {
		cache, err := newQueryCache(cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("client: create cache: %w", err)
		}
		c.cache = cache
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns <url>/api/<version>.
func (c *Client) BaseURL() string {
	return c.root
}

// Query performs a GET, serving fresh cached results and retrying failures.
func (c *Client) Query(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if c.cache != nil {
		if raw, ok := c.cache.get(key); ok {
			c.countCache(true)
			return raw, nil
		}
		c.countCache(false)
	}

	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, ulid.Make().String())
	}
	for failures := 0; ; failures++ {
		raw, err := c.Do(ctx, http.MethodGet, path, query, nil)
		if err == nil {
			if c.cache != nil {
				c.cache.set(key, raw)
			}
			return raw, nil
		}

		if c.cfg.DisableRetry || !apierror.ShouldRetry(failures, err) {
			return nil, err
		}

		delay := apierror.RetryDelay(failures)
		logger.L(ctx).Debug("retrying query", "path", path, "attempt", failures+1, "delay", delay, "error", err)
		if c.metrics != nil {
			c.metrics.RetriesTotal.WithLabelValues(routeLabel(path)).Inc()
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, &apierror.TransportError{Method: http.MethodGet, URL: c.root + path, Err: err}
		}
	}
}

// Mutate sends a non-GET request once and invalidates the affected cached queries.
func (c *Client) Mutate(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	raw, err := c.Do(ctx, method, path, nil, body)
	if err == nil && c.cache != nil {
		c.cache.invalidate(path)
	}
	return raw, err
}

// InvalidateAll drops every cached query.
func (c *Client) InvalidateAll() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Close releases the cache.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.close()
	}
}

// Do performs a single request. Non-2xx responses and transport failures are
// returned as *apierror.TransportError.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.root + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	fail := func(status int, respBody []byte, err error) error {
		return &apierror.TransportError{Method: method, URL: target, StatusCode: status, Body: respBody, Err: err}
	}

	if c.limiter != nil {
		start := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(0, nil, err)
		}
		if c.metrics != nil {
			c.metrics.RateLimitWaitTime.Observe(time.Since(start).Seconds())
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := c.addHeaders(ctx, req, body != nil)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, 0, start)
		c.log.Debug("api request failed", "method", method, "url", target, "request_id", requestID, "error", err)
		return nil, fail(0, nil, unwrapURLError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	c.observe(method, path, resp.StatusCode, start)
	if err != nil {
		return nil, fail(0, nil, fmt.Errorf("read response: %w", err))
	}
	if int64(len(respBody)) > c.maxBody {
		c.log.Warn("api response over size limit", "method", method, "url", target, "limit", c.maxBody, "request_id", requestID)
		return nil, fail(0, nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody))
	}

	c.log.Debug("api request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
		"request_id", requestID)

	if resp.StatusCode >= 400 {
		c.handleFailure(ctx, method, target, resp.StatusCode, requestID)
		return nil, fail(resp.StatusCode, respBody, nil)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	return json.RawMessage(respBody), nil
}

// addHeaders sets the common headers and returns the request id.
func (c *Client) addHeaders(ctx context.Context, req *http.Request, hasBody bool) string {
	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = ulid.Make().String()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return requestID
}

func (c *Client) handleFailure(ctx context.Context, method, target string, status int, requestID string) {
	switch {
	case status == http.StatusUnauthorized:
		if c.metrics != nil {
			c.metrics.Unauthorized.Inc()
		}
		if c.cache != nil {
			c.cache.clear()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
	case status == http.StatusForbidden:
		c.log.Warn("access forbidden", "method", method, "url", target, "request_id", requestID)
	case status >= 500:
		c.log.Error("server error", "method", method, "url", target, "status", status, "request_id", requestID)
	}
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, routeLabel(path), status, time.Since(start))
	}
}

func (c *Client) countCache(hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHits.Inc()
	} else {
		c.metrics.CacheMisses.Inc()
	}
}

// routeLabel collapses ids so metric cardinality stays bounded:
// /tanks/42/events becomes /tanks/{tankId}/events.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if parts[i-1] == "tanks" && parts[i] != "" {
			parts[i] = "{tankId}"
		}
	}
	return strings.Join(parts, "/")
}

// unwrapURLError strips *url.Error so messages read "context deadline exceeded"
// rather than repeating method and URL.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
