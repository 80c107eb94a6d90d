package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/tickerdesk/marketview/internal/model"
)

// SnapshotUnavailableError reports a failed snapshot fetch. Callers
// keep showing the previously buffered state and surface the failure
// to the rendering layer.
type SnapshotUnavailableError struct {
	Symbol model.Symbol
	Status int
}

func (e *SnapshotUnavailableError) Error() string {
	return fmt.Sprintf("snapshot for %s unavailable: http %d", e.Symbol, e.Status)
}

// IsRetryable returns true if the fetch should be retried.
func (e *SnapshotUnavailableError) IsRetryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// doRequest performs one GET round trip against the query service.
func (c *Client) doRequest(ctx context.Context, path string, symbol model.Symbol) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SnapshotUnavailableError{
			Symbol: symbol,
			Status: resp.StatusCode,
		}
	}

	return body, nil
}

// doWithRetry performs a request with jittered exponential backoff.
func (c *Client) doWithRetry(ctx context.Context, path string, symbol model.Symbol) ([]byte, error) {
	var lastErr error
	backoff := c.retryBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int64N(int64(backoff)))
			c.logger.Debug("retrying snapshot fetch",
				"attempt", attempt,
				"backoff", jitter,
				"path", path,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter):
			}

			backoff *= 2
		}

		body, err := c.doRequest(ctx, path, symbol)
		if err == nil {
			return body, nil
		}

		lastErr = err

		snapErr, ok := err.(*SnapshotUnavailableError)
		if !ok || !snapErr.IsRetryable() {
			return nil, err
		}
	}

	return nil, lastErr
}

// get performs a GET request with retries and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, symbol model.Symbol, result any) error {
	body, err := c.doWithRetry(ctx, path, symbol)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
