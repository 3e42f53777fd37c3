package ghostfolio

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultHost is the hosted Ghostfolio instance.
const DefaultHost = "https://ghostfol.io"

// DefaultRetryBackoff is the base delay before the first retry.
const DefaultRetryBackoff = time.Second

// ErrNoCredentials is returned when neither a bearer token nor a security
// token was configured.
var ErrNoCredentials = errors.New("ghostfolio token or key required")

// Credentials authenticate against Ghostfolio. Token is preferred; Key is
// exchanged for a token on first use.
type Credentials struct {
	Token string
	Key   string
}

// Client provides access to the Ghostfolio REST API.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration

	mu     sync.Mutex
	bearer string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Ghostfolio client. An empty host selects DefaultHost.
func NewClient(host string, creds Credentials, opts ...ClientOption) *Client {
	if host == "" {
		host = DefaultHost
	}

	c := &Client{
		baseURL: strings.TrimRight(host, "/"),
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:      rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: DefaultRetryBackoff,
		bearer:       creds.Token,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the request pacing.
func WithRateLimit(r rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}
