package apiclient

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

	"github.com/geocoder89/monoapp/internal/observability"
	"github.com/geocoder89/monoapp/internal/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Timeout bounds every backend call, connection and body read included.
const Timeout = 10 * time.Second

// DefaultBaseURL is used when no API_URL override is configured.
const DefaultBaseURL = "/api"

const maxResponseBytes = 1 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the backend API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	observers  observers
}

type Option func(*Client)

// WithHTTPClient swaps the transport. The client timeout is always reset to Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.httpClient = &cp
	}
}

// WithObserver adds request/response hooks; several observers run in order.
func WithObserver(obs ...Observer) Option {
	return func(c *Client) {
		c.observers = append(c.observers, obs...)
	}
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		headers:    make(http.Header),
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Timeout = Timeout

	return c
}

// ResolveBaseURL picks the API base: an absolute apiURL wins, a relative one is
// joined onto backendOrigin, and an empty one falls back to /api.
func ResolveBaseURL(apiURL, backendOrigin string) string {
	apiURL = strings.TrimSpace(apiURL)
	if apiURL == "" {
		apiURL = DefaultBaseURL
	}

	if u, err := url.Parse(apiURL); err == nil && u.IsAbs() {
		return strings.TrimRight(apiURL, "/")
	}

	if backendOrigin == "" {
		return apiURL
	}

	return strings.TrimRight(backendOrigin, "/") + "/" + strings.TrimLeft(apiURL, "/")
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetHealth(ctx context.Context) (shared.HealthResponse, error) {
	return Get[shared.HealthResponse](ctx, c, "/health")
}

func (c *Client) GetWelcome(ctx context.Context) (shared.WelcomeResponse, error) {
	return Get[shared.WelcomeResponse](ctx, c, "/")
}

func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPost, path, body, &out)
	return out, err
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPut, path, body, &out)
	return out, err
}

func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodDelete, path, nil, &out)
	return out, err
}

func (c *Client) url(path string) string {
	if path == "" || path == "/" {
		return c.baseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// do sends exactly one request. The observer sees one request event and one
// outcome event; errors reach the caller untouched.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	start := time.Now()
	c.observers.ObserveRequest(ctx, method, path)

	status, err := c.send(ctx, method, path, body, out)
	if err != nil {
		c.observers.ObserveError(ctx, method, path, err, time.Since(start))
		return err
	}

	c.observers.ObserveResponse(ctx, method, path, status, time.Since(start))
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return 0, err
	}

	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}

	if id := observability.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: payload}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return resp.StatusCode, nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return resp.StatusCode, nil
}
