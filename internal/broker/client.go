package broker

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Alpaca paper trading endpoint.
const DefaultBaseURL = "https://paper-api.alpaca.markets"

// DefaultPageSize is the activity page size Alpaca allows at most.
const DefaultPageSize = 100

// DefaultRetryDelay is the SDK's pause between retries of a failed request.
const DefaultRetryDelay = time.Second

// Client reads account activity from Alpaca.
type Client struct {
	sdk      *alpaca.Client
	limiter  *rate.Limiter
	pageSize int
	logger   *slog.Logger
}

type clientConfig struct {
	sdk      alpaca.ClientOpts
	limiter  *rate.Limiter
	pageSize int
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// NewClient creates an Alpaca client. An empty baseURL selects paper trading.
func NewClient(baseURL, apiKey, apiSecret string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cfg := clientConfig{
		sdk: alpaca.ClientOpts{
			APIKey:     apiKey,
			APISecret:  apiSecret,
			BaseURL:    baseURL,
			RetryLimit: 3,
			RetryDelay: DefaultRetryDelay,
			HTTPClient: &http.Client{Timeout: 30 * time.Second},
		},
		// Alpaca allows 200 requests per minute.
		limiter:  rate.NewLimiter(rate.Every(300*time.Millisecond), 5),
		pageSize: DefaultPageSize,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		sdk:      alpaca.NewClient(cfg.sdk),
		limiter:  cfg.limiter,
		pageSize: cfg.pageSize,
		logger:   cfg.logger,
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.sdk.HTTPClient.Timeout = d
	}
}

// WithRetries sets how often the SDK retries throttled or failed requests.
func WithRetries(max int, delay time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.sdk.RetryLimit = max
		c.sdk.RetryDelay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.sdk.HTTPClient = hc
	}
}

// WithRateLimit sets the request pacing.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *clientConfig) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// WithPageSize sets the activity page size.
func WithPageSize(n int) ClientOption {
	return func(c *clientConfig) {
		if n > 0 {
			c.pageSize = n
		}
	}
}
