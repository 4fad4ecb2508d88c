// Package backend is the HTTP client for a log-search server.
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

	"github.com/tinytelemetry/logsearch/internal/model"
)

// Endpoint paths.
const (
	PathHealth     = "/api/health"
	PathDensity    = "/api/density"
	PathLogs       = "/api/logs"
	PathMetric     = "/api/get/metric"
	PathListViews  = "/api/listviews"
	PathListMetric = "/api/metric"
	PathView       = "/api/view"
)

// Client implements model.Backend over HTTP/JSON. It sends no auth headers
// and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a non-2xx HTTP response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Option configures Client behavior.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: model.DefaultRequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

var _ model.Backend = (*Client)(nil)

func (c *Client) Density(ctx context.Context, q model.DensityQuery) (model.Series, error) {
	var out model.Series
	if err := c.do(ctx, http.MethodPost, PathDensity, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Logs(ctx context.Context, q model.LogQuery) ([]model.LogRecord, error) {
	var out []model.LogRecord
	if err := c.do(ctx, http.MethodPost, PathLogs, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.LogRecord{}
	}
	return out, nil
}

func (c *Client) Metric(ctx context.Context, q model.MetricQuery) (model.Series, error) {
	var out model.Series
	if err := c.do(ctx, http.MethodPost, PathMetric, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Health(ctx context.Context) (model.Health, error) {
	var out model.Health
	err := c.do(ctx, http.MethodGet, PathHealth, nil, &out)
	return out, err
}

func (c *Client) ListViews(ctx context.Context) ([]model.View, error) {
	var out []model.View
	if err := c.do(ctx, http.MethodGet, PathListViews, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMetrics(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, PathListMetric, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateView registers or replaces a view. The server answers 201 with an
// empty JSON object.
func (c *Client) CreateView(ctx context.Context, def model.ViewDefinition) error {
	return c.do(ctx, http.MethodPost, PathView, def, nil)
}

func (c *Client) DeleteView(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, PathView+"/"+url.PathEscape(name), nil, nil)
}

// do sends one request. A non-nil body is encoded as JSON; a non-nil dest
// receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(data)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: bodyStr}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", path, err)
	}
	return nil
}
