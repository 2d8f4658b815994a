package jasiapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paqira/jasiapi/internal/observability"
)

// DefaultTimeout bounds each upstream round trip unless the caller supplies
// an http.Client of their own.
const DefaultTimeout = 30 * time.Second

// Client queries the JMA Seismic Intensity Database. It holds no state
// between calls; each operation performs exactly one HTTP round trip. The
// zero value is not usable, construct with [NewClient].
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (and with it the default
// timeout). Proxy settings, TLS config, and cancellation behavior beyond
// context all live here.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different host, typically a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetricsRegistry registers the client's Prometheus collectors
// (request counts, durations, parse failures, result rows) with reg. By
// default the collectors exist but are not registered anywhere.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = observability.NewMetrics(reg) }
}

// WithClock replaces the time source used to validate date bounds. Tests
// freeze it with a clockwork fake.
func WithClock(clk clockwork.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// NewClient creates a client for the live database at [BaseURL].
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    BaseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    observability.NewUnregistered(),
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// post sends one form-encoded request to api.php and returns the raw body.
// Transport and status failures come back as *RequestError.
func (c *Client) post(ctx context.Context, op string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.outcome(op, "error")
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.outcome(op, "error")
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.outcome(op, "error")
		return nil, &RequestError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("upstream response", "op", op, "bytes", len(body))
	return body, nil
}

// get fetches one of the site's static JSON tables (city/station/region).
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RequestDuration.WithLabelValues("resolve").Observe(time.Since(start).Seconds())
	if err != nil {
		c.outcome("resolve", "error")
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.outcome("resolve", "error")
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.outcome("resolve", "error")
		return nil, &RequestError{Err: fmt.Errorf("read response: %w", err)}
	}
	c.outcome("resolve", "success")
	return body, nil
}

func (c *Client) outcome(op, outcome string) {
	c.metrics.Requests.WithLabelValues(op, outcome).Inc()
}

func (c *Client) parseFailed(op string) {
	c.metrics.ParseFailures.Inc()
	c.outcome(op, "error")
}

func (c *Client) rows(op string, n int) {
	c.metrics.ResultRows.WithLabelValues(op).Observe(float64(n))
	c.outcome(op, "success")
}
