// Package httpclient provides the HTTP client used by the geocoder: retry
// with exponential backoff, a rate limiter and a circuit breaker.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

// Client wraps http.Client with retry logic, rate limiting and a circuit
// breaker.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     logx.Logger
	config     Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the request timeout duration.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts.
	// Default: 3
	MaxRetries int

	// RetryBackoff is the initial backoff; it doubles on every retry.
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxRetryBackoff caps the backoff.
	// Default: 30 seconds
	MaxRetryBackoff time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// MinInterval is the minimum time between requests. 0 disables the limiter.
	MinInterval time.Duration

	// BreakerName identifies the circuit breaker in logs. Empty disables it.
	BreakerName string

	// BreakerFailures is the number of consecutive failed calls that opens
	// the breaker.
	// Default: 5
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open.
	// Default: 60 seconds
	BreakerTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryBackoff:    time.Second,
		MaxRetryBackoff: 30 * time.Second,
		UserAgent:       "contacts/1.0",
		BreakerFailures: 5,
		BreakerTimeout:  60 * time.Second,
	}
}

// New creates a client; zero values in config take the defaults.
func New(config Config, logger logx.Logger) *Client {
	def := DefaultConfig()
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = def.RetryBackoff
	}
	if config.MaxRetryBackoff == 0 {
		config.MaxRetryBackoff = def.MaxRetryBackoff
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = def.BreakerFailures
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = def.BreakerTimeout
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	logger = logger.With("component", "httpclient")

	c := &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		config:     config,
	}
	if config.MinInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(config.MinInterval), 1)
	}
	if config.BreakerName != "" {
		failures := config.BreakerFailures
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        config.BreakerName,
			MaxRequests: 1,
			Timeout:     config.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
			IsSuccessful: func(err error) bool {
				// the server answered; client errors do not mean it is down
				return err == nil || errors.Is(err, errors.ErrNotFound) ||
					errors.Is(err, errors.ErrUnauthorized) || errors.Is(err, errors.ErrInvalidInput)
			},
		})
	}
	return c
}

// FetchJSON performs a GET through the breaker and returns the body of a
// 2xx response.
func (c *Client) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	if c.breaker == nil {
		return c.fetch(ctx, url)
	}
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, url)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return nil, errors.Wrapf(errors.ErrCircuitOpen, "%s: %v", c.config.BreakerName, err)
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Request(ctx, http.MethodGet, url, nil, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	if err := CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, errors.Wrapf(err, "request to %s failed", redact(url))
	}
	return ReadBody(resp)
}

// Request performs an HTTP request with retry logic and rate limiting.
func (c *Client) Request(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "rate limit wait failed")
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create request for %s", method)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		c.logger.Debug("HTTP request", "method", method, "url", redact(url), "attempt", attempt+1)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			c.logger.Warn("HTTP request failed",
				"method", method,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			lastErr = err
			if ctx.Err() != nil || attempt >= c.config.MaxRetries {
				break
			}
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, errors.Wrap(err, "backoff interrupted")
			}
			continue
		}

		c.logger.Debug("HTTP response received", "status", resp.StatusCode, "duration_ms", duration.Milliseconds())

		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		if attempt >= c.config.MaxRetries {
			break
		}
		c.logger.Warn("HTTP request returned retryable status", "status", resp.StatusCode, "attempt", attempt+1)
		if err := c.backoff(ctx, attempt); err != nil {
			return nil, errors.Wrap(err, "backoff interrupted")
		}
	}

	return nil, errors.Wrapf(errors.Join(errors.ErrServiceUnavailable, lastErr),
		"request failed after %d attempts", c.config.MaxRetries+1)
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// backoff waits RetryBackoff * 2^attempt, capped at MaxRetryBackoff.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := c.config.RetryBackoff * time.Duration(math.Pow(2, float64(attempt)))
	if d > c.config.MaxRetryBackoff {
		d = c.config.MaxRetryBackoff
	}
	c.logger.Debug("Backing off before retry", "attempt", attempt+1, "backoff_ms", d.Milliseconds())

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus maps a non-2xx status to a sentinel error.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusBadRequest:
		return errors.ErrInvalidInput
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
}

// redact drops the query string, which carries the API key.
func redact(url string) string {
	if base, _, ok := strings.Cut(url, "?"); ok {
		return base + "?…"
	}
	return url
}

func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, min_interval=%s}",
		c.config.Timeout, c.config.MaxRetries, c.config.MinInterval)
}
