// Package httpapi implements the SearchBackend port over the backend's
// JSON HTTP API (GET /status, POST /search).
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/logger"
	"github.com/custodia-labs/seekr/internal/metrics"
)

// Ensure Client implements the interface.
var _ driven.SearchBackend = (*Client)(nil)

const (
	// HeaderRequestID carries a per-request UUID.
	HeaderRequestID = "X-Request-ID"

	pathStatus = "status"
	pathSearch = "search"

	// maxBodyBytes caps how much of a reply is decoded.
	maxBodyBytes = 8 << 20
)

var (
	// ErrInvalidBaseURL is returned by New for an unusable base URL.
	ErrInvalidBaseURL = errors.New("invalid backend URL")

	// ErrIncompleteReply wraps a JSON reply missing the fields a caller reads:
	// a null status body, or a success without a results array.
	ErrIncompleteReply = errors.New("incomplete reply")
)

// Client talks to the vector-search backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	apiKey  string
	limiter *rate.Limiter
	metrics *metrics.Metrics
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero keeps the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithAPIKey sends key as a bearer token.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithRateLimit throttles outgoing requests to perSecond with a burst of one.
// Zero or negative disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithMetrics records each call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base:  u,
		http:  &http.Client{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromSettings creates a client from backend settings.
func NewFromSettings(s domain.BackendSettings, m *metrics.Metrics) (*Client, error) {
	return New(s.URL,
		WithTimeout(s.Timeout()),
		WithAPIKey(s.APIKey),
		WithRateLimit(s.RateLimit),
		WithMetrics(m),
	)
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Status issues GET /status.
func (c *Client) Status(ctx context.Context) (status domain.StatusResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveBackend(pathStatus, start, err) }()

	resp, err := c.do(ctx, http.MethodGet, pathStatus, nil)
	if err != nil {
		return domain.StatusResponse{}, err
	}
	defer resp.Body.Close()

	var reply *domain.StatusResponse
	if err := decode(resp.Body, &reply); err != nil {
		return domain.StatusResponse{}, &domain.TransportError{Op: pathStatus, Err: err}
	}
	if reply == nil {
		return domain.StatusResponse{}, &domain.TransportError{
			Op:  pathStatus,
			Err: fmt.Errorf("%w: null body", ErrIncompleteReply),
		}
	}
	status = *reply
	status.HTTPStatus = resp.StatusCode

	logger.Debug("Status: http=%d status=%q", resp.StatusCode, status.Status)
	return status, nil
}

// searchReply is the union of the success and failure bodies. Results is
// a pointer so an absent or null array can be told apart from an empty one.
type searchReply struct {
	Query   string               `json:"query"`
	Total   int                  `json:"total"`
	Results *[]domain.ResultItem `json:"results"`
	Error   string               `json:"error"`
}

// Search issues POST /search.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (out *domain.SearchResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveBackend(pathSearch, start, err) }()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, pathSearch, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reply *searchReply
	if err := decode(resp.Body, &reply); err != nil {
		return nil, &domain.TransportError{Op: pathSearch, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ae := &domain.ApplicationError{StatusCode: resp.StatusCode}
		if reply != nil {
			ae.Message = reply.Error
		}
		return nil, ae
	}

	if reply == nil || reply.Results == nil {
		return nil, &domain.TransportError{
			Op:  pathSearch,
			Err: fmt.Errorf("%w: no results array", ErrIncompleteReply),
		}
	}

	out = &domain.SearchResponse{Query: reply.Query, Total: reply.Total, Results: *reply.Results}
	logger.Debug("Search: http=%d total=%d results=%d", resp.StatusCode, out.Total, len(out.Results))
	return out, nil
}

// do sends one request. Failures before a reply arrives are TransportErrors.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.TransportError{Op: path, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return nil, &domain.TransportError{Op: path, Err: err}
	}

	id := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, id)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	logger.Debug("%s %s request_id=%s", method, req.URL.Path, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: path, Err: err}
	}
	return resp, nil
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
