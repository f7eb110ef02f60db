package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultPriceBase    = "https://clob.polymarket.com"
	defaultMetadataBase = "https://gamma-api.polymarket.com"

	// Rate limits set at 60% of the documented upstream limits.
	// Price API /books: 500/10s -> 300/10s -> 30/s
	priceRatePerSec = 30
	// Metadata API /markets: 300/10s -> 180/10s -> 18/s
	metadataRatePerSec = 18
	// Price API general (sampling-markets, midpoint, etc.): 9000/10s -> 5400/10s -> 540/s
	generalRatePerSec = 540

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client is the shared, rate-limited, retrying HTTP client for the two
// upstream Polymarket APIs. It is safe for concurrent use.
type Client struct {
	http            *http.Client
	priceBase       string
	metadataBase    string
	priceLimiter    *rate.Limiter
	metadataLimiter *rate.Limiter
	generalLimiter  *rate.Limiter
}

// NewClient builds a Client against the given base URLs. Empty strings fall
// back to the production hosts.
func NewClient(priceBase, metadataBase string) *Client {
	if priceBase == "" {
		priceBase = defaultPriceBase
	}
	if metadataBase == "" {
		metadataBase = defaultMetadataBase
	}
	return &Client{
		http:            &http.Client{Timeout: 10 * time.Second},
		priceBase:       priceBase,
		metadataBase:    metadataBase,
		priceLimiter:    rate.NewLimiter(priceRatePerSec, 5),
		metadataLimiter: rate.NewLimiter(metadataRatePerSec, 10),
		generalLimiter:  rate.NewLimiter(generalRatePerSec, 50),
	}
}

// get issues a GET with rate limiting and retries.
func (c *Client) get(ctx context.Context, limiter *rate.Limiter, url string, out any) error {
	_, err := c.doWithRetry(ctx, limiter, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	}, out, false)
	return err
}

// getTolerating404 issues a GET where a 404 is an expected miss, not an
// error: it returns found=false, err=nil instead of failing the call.
func (c *Client) getTolerating404(ctx context.Context, limiter *rate.Limiter, url string, out any) (found bool, err error) {
	return c.doWithRetry(ctx, limiter, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	}, out, true)
}

// post issues a JSON POST with rate limiting and retries.
func (c *Client) post(ctx context.Context, limiter *rate.Limiter, url string, body, out any) error {
	_, err := c.doWithRetry(ctx, limiter, func() (*http.Response, error) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	}, out, false)
	return err
}

// doWithRetry runs fn with exponential backoff and jitter. When
// tolerate404 is true, a 404 response returns (false, nil) instead of an
// error; otherwise it returns (true, nil) on a decoded 2xx body.
func (c *Client) doWithRetry(ctx context.Context, limiter *rate.Limiter, fn func() (*http.Response, error), out any, tolerate404 bool) (bool, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return false, fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries {
				return false, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if tolerate404 && resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return false, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by upstream", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return false, fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return false, fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
		return true, nil
	}
	return false, fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep waits with exponential backoff and jitter, respecting ctx.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	wait += time.Duration(rand.Int63n(int64(baseRetryWait)))
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
