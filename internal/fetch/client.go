// Package fetch retrieves remote media byte streams with a retry strategy
// shared by the merge pipeline's download step and the proxy/relay: a bounded
// number of attempts, a fresh request identity per attempt, and exponential
// backoff between attempts.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
)

// StatusError is returned when the upstream answered with a non-success
// status on the final attempt.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

// Client fetches remote streams with identity rotation and retry.
type Client struct {
	// client is used for bounded requests (downloads to disk)
	client *http.Client
	// streamClient is used for relayed streams without an overall timeout
	streamClient *http.Client
	cfg          config.DownloadConfig
	retry        RetryConfig
	logger       *slog.Logger
}

// NewClient creates a fetch client from download configuration.
func NewClient(cfg config.DownloadConfig, logger *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		streamClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
		cfg: cfg,
		retry: RetryConfig{
			InitialDelay:  cfg.RetryDelay,
			MaxDelay:      cfg.MaxRetryDelay,
			BackoffFactor: 2.0,
		},
		logger: logger,
	}
}

// Fetch retrieves the URL with the retry/identity-rotation strategy and
// returns the upstream response for streaming. extra headers (e.g. Range)
// are forwarded on every attempt. 200 and 206 count as success; any other
// status closes the body and retries. The caller owns the response body.
func (c *Client) Fetch(ctx context.Context, rawURL string, extra http.Header) (*http.Response, error) {
	return c.fetch(ctx, c.streamClient, rawURL, extra)
}

func (c *Client) fetch(ctx context.Context, hc *http.Client, rawURL string, extra http.Header) (*http.Response, error) {
	return Fallback(ctx, c.retry, Identities(c.cfg.Attempts), func(ctx context.Context, id Identity) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		applyHeaders(req, id)
		for key, values := range extra {
			for _, v := range values {
				req.Header.Set(key, v)
			}
		}

		resp, err := hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("send request: %w", err)
		}

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			c.logger.Warn("fetch attempt rejected", "url", rawURL, "status", resp.StatusCode)
			return nil, &StatusError{Code: resp.StatusCode}
		}

		return resp, nil
	})
}

// DownloadFile retrieves the URL to a local file, returning the byte count.
// Each retry attempt restarts the transfer from scratch. The transfer runs
// on the bounded client so a stalled upstream cannot hold the merge forever.
func (c *Client) DownloadFile(ctx context.Context, rawURL, dest string) (int64, error) {
	resp, err := c.fetch(ctx, c.client, rawURL, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	n, err := io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return n, fmt.Errorf("write %s: %w", dest, err)
	}

	c.logger.Info("stream downloaded", "url", rawURL, "bytes", n, "dest", dest)
	return n, nil
}

// LastStatus extracts the upstream HTTP status from an error chain, or 0 for
// transport-level failures.
func LastStatus(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
