package sources

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/tzleads/contact-backend/config"
)

// Client is the throttled HTTP fetcher shared by one adapter. Every request
// passes through the per-source Limiter; no operation may bypass that gate.
type Client struct {
	http       *http.Client
	limiter    *Limiter
	userAgents []string
	maxRetries int
}

// NewClient builds a fetcher with its own rate limiter for one source
func NewClient(cfg config.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout),
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, // #nosec G402
				},
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		limiter:    NewLimiter(time.Duration(cfg.RateLimitMin), time.Duration(cfg.RateLimitMax)),
		userAgents: cfg.UserAgents,
		maxRetries: cfg.MaxRetries,
	}
}

// Fetch retrieves a URL as text. Transient failures (429, 5xx, network) are
// retried with exponential backoff up to the configured limit; other HTTP
// errors fail immediately.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	c.limiter.Wait(ctx)

	var body string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("HTTP %d from %s", resp.StatusCode, url))
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		logger.Warn("Fetch failed", zap.String("url", url), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return body, nil
}

func (c *Client) userAgent() string {
	return c.userAgents[rand.Intn(len(c.userAgents))] // #nosec G404
}
