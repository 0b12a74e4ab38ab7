package remote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"trade-journal-go/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher retrieves raw journal documents.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// Client downloads export documents over HTTP, for example from a backup
// bucket or a synced folder exposed by a file server.
type Client struct {
	client     *resty.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
	maxRetries int
	backoff    func(attempt int) time.Duration
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a client from the remote config.
func NewClient(cfg config.Remote, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		client:     client,
		logger:     logger.Named("remote"),
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: retries,
		backoff:    exponentialBackoff,
	}
}

// exponentialBackoff waits 1s, 2s, 4s, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// FetchDocument downloads url and returns the body. 429 and 5xx responses
// and transport errors are retried; other non-2xx responses fail at once.
func (c *Client) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Fetching document", zap.String("url", url), zap.Int("attempt", i+1))
		resp, err := c.client.R().SetContext(ctx).Get(url)

		if err == nil && !resp.IsError() {
			return resp.Body(), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var retryAfter time.Duration
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %s", resp.Status())
			if !retryable(resp.StatusCode()) {
				return nil, fmt.Errorf("failed to fetch %s: %w", url, lastErr)
			}
			if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}

		if i == c.maxRetries-1 {
			break
		}
		if retryAfter == 0 {
			retryAfter = c.backoff(i)
		}

		c.logger.Warn("Fetch failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(lastErr),
		)

		select {
		case <-time.After(retryAfter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no attempts made")
	}
	return nil, fmt.Errorf("failed to fetch %s after %d attempts: %w", url, c.maxRetries, lastErr)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
