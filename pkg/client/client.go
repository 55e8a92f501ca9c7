// Package client performs GET requests against the api-sports football API
// with credential headers, transport error classification, metrics and an
// optional Redis page cache.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/player-stats-etl/pkg/apifootball"
	"github.com/Sternrassler/player-stats-etl/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for api-football requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apifootball_requests_total",
		Help: "Total api-football requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "apifootball_request_duration_seconds",
		Help:    "api-football request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	transportErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "apifootball_transport_errors_total",
		Help: "Total api-football transport failures by class",
	}, []string{"class"})
)

const (
	// DefaultBaseURL is the api-sports football v3 host.
	DefaultBaseURL = "https://v3.football.api-sports.io"

	// DefaultAPIHost is sent as x-rapidapi-host.
	DefaultAPIHost = "v3.football.api-sports.io"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long accepted pages stay in Redis.
	DefaultCacheTTL = 6 * time.Hour

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 16 << 20
)

// Response is a completed HTTP exchange. Non-2xx statuses are not errors at
// this level; callers decide what a status means.
type Response struct {
	StatusCode int
	Body       []byte
	FromCache  bool
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is the api-football HTTP client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API, without trailing slash
	BaseURL string

	// APIKey is sent as x-rapidapi-key (REQUIRED)
	APIKey string

	// APIHost is sent as x-rapidapi-host
	APIHost string

	// Timeout per request
	Timeout time.Duration

	// Cache enables the Redis page cache when non-nil
	Cache *cache.Manager

	// CacheTTL for successful pages
	CacheTTL time.Duration
}

// DefaultConfig returns the production configuration for the given key.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		APIKey:   apiKey,
		APIHost:  DefaultAPIHost,
		Timeout:  DefaultTimeout,
		CacheTTL: DefaultCacheTTL,
	}
}

// New creates a new api-football client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIHost == "" {
		cfg.APIHost = DefaultAPIHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		cache:   cfg.Cache,
		config:  cfg,
		logger:  log.With().Str("component", "apifootball-client").Logger(),
	}, nil
}

// Get issues a GET for endpoint with the given query parameters.
// A returned error is always a *TransportError.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	key := cache.PageKey{Endpoint: endpoint, Query: params}

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.Debug().Str("endpoint", endpoint).Str("key", key.String()).Msg("Page served from cache")
			requestsTotal.WithLabelValues(endpoint, "cache").Inc()
			return &Response{StatusCode: entry.StatusCode, Body: entry.Data, FromCache: true}, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	req, err := c.newRequest(ctx, endpoint, params)
	if err != nil {
		return nil, c.transportError(endpoint, err)
	}

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", req.URL.RawQuery).
		Msg("Executing api-football request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(endpoint, fmt.Errorf("read response body: %w", err))
	}

	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	out := &Response{StatusCode: resp.StatusCode, Body: body}

	if c.cache != nil && out.OK() {
		if !cacheable(body) {
			c.logger.Debug().Str("endpoint", endpoint).Str("key", key.String()).Msg("Page not cached: malformed or carries upstream errors")
			return out, nil
		}
		if err := c.cache.Set(ctx, key, cache.NewEntry(body, resp.StatusCode, c.config.CacheTTL)); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache page")
		}
	}

	return out, nil
}

// cacheable reports whether a 2xx body is a well-formed page without
// api-sports application errors. Error pages must reach the upstream again
// on the next run.
func cacheable(body []byte) bool {
	env, err := apifootball.DecodeEnvelope(body)
	return err == nil && env.UpstreamErrors() == ""
}

func (c *Client) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.config.APIKey)
	req.Header.Set("x-rapidapi-host", c.config.APIHost)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) transportError(endpoint string, err error) *TransportError {
	class := classifyTransportError(err)
	transportErrorsTotal.WithLabelValues(string(class)).Inc()
	requestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
	c.logger.Error().
		Err(err).
		Str("endpoint", endpoint).
		Str("error_class", string(class)).
		Msg("api-football request failed")
	return &TransportError{Class: class, Endpoint: endpoint, Err: err}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
