package plugins

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultReadyTimeout bounds how long WaitReady probes a provider before
// giving up.
const DefaultReadyTimeout = 10 * time.Second

// WaitReady polls url until the provider answers an HTTP request, replacing
// a fixed startup delay with an actual readiness signal. Any HTTP status
// counts as ready; only connection failures keep the probe retrying.
func WaitReady(ctx context.Context, url string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 40
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 500 * time.Millisecond
	// 4xx/5xx still means the server is up and listening.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("plugins: ready probe: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("plugins: provider not ready at %s: %w", url, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}
