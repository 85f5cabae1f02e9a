package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultUserAgent = "pundit-watch/1.0 (+https://github.com/pundit-watch)"

// Client is the shared HTTP client used for every outbound request in a crawl
// run. It pins one identity header and one total-request timeout, and treats
// non-success responses as "no data" rather than errors, so that a bad status
// from a third-party page degrades to an empty result instead of failing a
// source.
type Client struct {
	http      *http.Client
	userAgent string
}

// New creates a Client with the given per-request timeout. A zero or negative
// timeout falls back to 15 seconds.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// Get fetches url and returns the response body. On a non-2xx status it
// returns (nil, nil): the caller sees an empty payload, not an error.
// Transport-level failures (DNS, connect, timeout) are returned as errors for
// the caller's boundary to absorb.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("fetch: non-success status", "url", url, "status", resp.StatusCode)
		return nil, nil
	}
	return io.ReadAll(resp.Body)
}

// Close releases pooled idle connections. The crawler acquires one Client per
// run and must call Close exactly once on every exit path.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
