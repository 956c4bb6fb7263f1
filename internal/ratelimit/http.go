package ratelimit

import (
	"context"
	"fmt"
	"net/url"

	"github.com/feral-file/ff-ownership-resolver/internal/adapter"
)

// httpClient takes a token per subgraph host before each request
type httpClient struct {
	inner   adapter.HTTPClient
	limiter Limiter
}

// attemptHooker is an HTTP client that retries internally and can wait before each attempt
type attemptHooker interface {
	WithAttemptHook(hook adapter.AttemptHook) adapter.HTTPClient
}

// NewHTTPClient makes every request wait on limiter. Clients that retry
// internally take a token per attempt, others a token per request.
func NewHTTPClient(inner adapter.HTTPClient, limiter Limiter) adapter.HTTPClient {
	if hooker, ok := inner.(attemptHooker); ok {
		return hooker.WithAttemptHook(func(ctx context.Context, rawURL string) error {
			return wait(ctx, limiter, rawURL)
		})
	}
	return &httpClient{inner: inner, limiter: limiter}
}

func (c *httpClient) PostBytes(ctx context.Context, rawURL string, headers map[string]string, body []byte) ([]byte, error) {
	if err := wait(ctx, c.limiter, rawURL); err != nil {
		return nil, err
	}
	return c.inner.PostBytes(ctx, rawURL, headers, body)
}

func wait(ctx context.Context, limiter Limiter, rawURL string) error {
	key := limitKey(rawURL)
	if err := limiter.Wait(ctx, key); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", key, err)
	}
	return nil
}

// limitKey keys by host: gateway URLs carry API keys in their path
func limitKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
