// Package httpbroker is a generic, wire-protocol-agnostic REST
// implementation of ports.Broker. It is a reference adapter, not a named
// brokerage integration (spec §1 places the concrete wire protocol out of
// scope) — it exists so the broker port has a concrete exerciser for rate
// limiting and bounded retries, grounded in the teacher's
// adapters/polymarket/client.go shape.
package httpbroker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const baseRetryWait = 250 * time.Millisecond

// Client is the rate-limited, retrying HTTP client underlying Broker.
type Client struct {
	http       *http.Client
	baseURL    string
	credential string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient builds a Client against baseURL, authenticating requests with
// credential (a resolved secret; the core never reads it — §6 leaves
// credential storage to an external keychain adapter).
func NewClient(baseURL, credential string, requestsPerSecond float64, burst, maxRetries int, timeout time.Duration) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		credential: credential,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		maxRetries: maxRetries,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		c.authorize(req)
		return c.http.Do(req)
	}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("httpbroker: marshal body: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		c.authorize(req)
		return c.http.Do(req)
	}, out)
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}
}

// doWithRetry executes fn with exponential backoff, retrying on 429/5xx
// and transport errors, mirroring the teacher's adapters/polymarket
// client's retry shape.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("httpbroker: rate limiter: %w", err)
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := fn()
		if err != nil {
			if attempt == c.maxRetries {
				return fmt.Errorf("httpbroker: request failed after %d retries: %w", c.maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("httpbroker: rate limited by broker", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == c.maxRetries {
				return fmt.Errorf("httpbroker: server error %d after %d retries", resp.StatusCode, c.maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("httpbroker: client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("httpbroker: decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("httpbroker: exhausted %d retries", c.maxRetries)
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
