// Package redirect follows short links to their destination URL.
package redirect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrTooManyRedirects indicates the redirect chain exceeded the cap.
var ErrTooManyRedirects = errors.New("too many redirects")

const (
	defaultTimeout = 15 * time.Second
	maxRedirects   = 5
	limiterBurst   = 5
	userAgent      = "MediaGrabBot/1.0"
)

// Resolver performs rate-limited, timeout-bound redirect resolution.
type Resolver struct {
	client  *http.Client
	limiter *rate.Limiter
}

func New(rps float64, timeout time.Duration) *Resolver {
	if rps <= 0 {
		rps = 2
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Resolver{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrTooManyRedirects
				}

				return nil
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), limiterBurst),
	}
}

// Resolve follows redirects from rawURL and returns the final URL. The
// response body is discarded; only the landing address matters.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
