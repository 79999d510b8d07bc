package authapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is a client for a remote identity service's HTTP API. It covers
// federated sign-in, session refresh, account flow triggers and the
// privileged user-administration surface.
//
// All configuration (base URL, default headers, transport handle) is
// fixed at construction and never mutated afterwards, so a single Client
// is safe for unlimited concurrent use.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP transport handle. Retries,
// TLS and connection handling all belong to the supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithServiceKey configures the elevated service-level credential
// required by the admin operations. The key is carried in the default
// header set on every request, not as a per-call token.
func WithServiceKey(key string) Option {
	return func(c *Client) {
		c.headers["Authorization"] = "Bearer " + key
		c.headers["apikey"] = key
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger enables debug logging of completed requests.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit throttles outgoing requests client-side to rps requests
// per second with the given burst. Each operation waits on the limiter
// before invoking the transport.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a client for the identity service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: make(map[string]string),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
