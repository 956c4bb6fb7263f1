package adapter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// PostBytes performs a POST request with the given headers and returns the response body
	PostBytes(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error)
}

// RetryConfig bounds the backoff applied to rate-limited responses
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used when no retry configuration is given
var DefaultRetryConfig = RetryConfig{
	InitialInterval: 2 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  1 * time.Minute,
}

// AttemptHook runs before every request attempt, retries included
type AttemptHook func(ctx context.Context, url string) error

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client        *http.Client
	retry         RetryConfig
	beforeAttempt AttemptHook
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return NewHTTPClientWithRetry(timeout, DefaultRetryConfig)
}

// NewHTTPClientWithRetry creates a new real HTTP client with a custom rate-limit backoff
func NewHTTPClientWithRetry(timeout time.Duration, retry RetryConfig) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		retry: retry,
	}
}

// WithAttemptHook returns a copy of the client that runs hook before each attempt.
// A hook error stops the request without retrying.
func (c *RealHTTPClient) WithAttemptHook(hook AttemptHook) HTTPClient {
	clone := *c
	clone.beforeAttempt = hook
	return &clone
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry for rate limiting.
// Only 429 is retried. Transport errors and any other non-200 status are permanent:
// the caller decides whether to ask again, possibly at a different block.
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, newRequest func() (*http.Request, error)) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		req, err := newRequest()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		if c.beforeAttempt != nil {
			if err := c.beforeAttempt(ctx, req.URL.String()); err != nil {
				return backoff.Permanent(err)
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to perform request: %w", err))
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("url", req.URL.String()))
			return fmt.Errorf("rate limited (429), retrying")
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body)))
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.MaxElapsedTime = c.retry.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}

// PostBytes performs a POST request and returns the response body
// Implements exponential backoff retry for rate limiting (429) responses
func (c *RealHTTPClient) PostBytes(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error) {
	return c.doRequestWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req, nil
	})
}
