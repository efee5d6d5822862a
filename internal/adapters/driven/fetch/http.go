// Package fetch downloads raw page markup over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.PageFetcher = (*Fetcher)(nil)

// maxBodySize caps downloaded markup at 10 MiB; pages past that are not
// content pages.
const maxBodySize = 10 << 20

// Fetcher downloads pages with bounded retries and a politeness rate limit.
// Browser User-Agent headers are rotated per attempt to avoid trivial bot
// blocking.
type Fetcher struct {
	client     *http.Client
	userAgents []string
	retries    int
	retryDelay time.Duration
	limiter    *rate.Limiter
	attempts   atomic.Int64 // rotates the User-Agent list; pages fetch in parallel
}

// New creates a fetcher from the fetch configuration.
func New(cfg domain.FetchConfig) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: cfg.Timeout},
		userAgents: cfg.UserAgents,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
	}
}

// Fetch downloads the page at url. Transport errors and 5xx responses are
// retried up to the configured limit; 4xx responses are not, since they
// will not change on retry. All failures come back as ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retry %d/%d for %s", attempt, f.retries, url)
			select {
			case <-time.After(f.retryDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrFetch, ctx.Err())
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
		}

		body, retryable, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("%w: %s: %v", domain.ErrFetch, url, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, true, err
	}

	logger.Debug("Fetched %s (%d bytes)", url, len(data))
	return data, false, nil
}

func (f *Fetcher) nextUserAgent() string {
	if len(f.userAgents) == 0 {
		return "pagelens/1.0"
	}
	n := f.attempts.Add(1) - 1
	return f.userAgents[int(n)%len(f.userAgents)]
}
