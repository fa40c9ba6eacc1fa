// ABOUTME: Fetch-with-retry performs one HTTP GET with per-attempt timeouts
// ABOUTME: Failed attempts are retried with jittered exponential backoff

package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	coreerrors "portfolio-feeds-api/core/errors"
	"portfolio-feeds-api/core/interfaces"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the wait before the first retry
	DefaultBaseDelay = time.Second

	// DefaultAttemptTimeout bounds every single attempt
	DefaultAttemptTimeout = 10 * time.Second

	// maxJitter is the exclusive upper bound of the jitter fraction
	maxJitter = 0.3
)

// Options configures a Fetcher
type Options struct {
	MaxRetries     int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration

	// Jitter returns a value in [0, 1); it is scaled to [0, 0.3). Defaults to math/rand.
	Jitter func() float64

	// NewTimer creates the timer used between attempts. Defaults to a real timer.
	NewTimer func() backoff.Timer
}

// Fetcher performs GET requests with bounded retries
type Fetcher struct {
	client interfaces.HTTPClient
	logger interfaces.Logger
	opts   Options
}

// NewFetcher creates a fetcher; zero option values fall back to the defaults.
// A negative MaxRetries disables retries.
func NewFetcher(client interfaces.HTTPClient, logger interfaces.Logger, opts Options) *Fetcher {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = DefaultAttemptTimeout
	}
	if opts.Jitter == nil {
		opts.Jitter = rand.Float64
	}

	return &Fetcher{
		client: client,
		logger: logger,
		opts:   opts,
	}
}

// Get fetches url and returns the full response body of the first successful attempt.
// After the last failed attempt it returns a *errors.RequestFailedError wrapping that
// attempt's error, which is a *errors.TimeoutError when the attempt timed out.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.client == nil {
		return nil, errors.New("HTTP client not configured")
	}

	var (
		body     []byte
		attempts int
		lastErr  error
	)

	operation := func() error {
		attempts++
		data, err := f.attempt(ctx, url)
		if err != nil {
			lastErr = err
			return err
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		if f.logger != nil {
			f.logger.Debug("Retrying request", map[string]interface{}{
				"attempt": attempts,
				"wait":    wait.String(),
				"error":   err.Error(),
			})
		}
	}

	schedule := backoff.WithContext(
		backoff.WithMaxRetries(f.newBackOff(), uint64(f.opts.MaxRetries)),
		ctx,
	)

	var timer backoff.Timer
	if f.opts.NewTimer != nil {
		timer = f.opts.NewTimer()
	}

	if err := backoff.RetryNotifyWithTimer(operation, schedule, notify, timer); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, &coreerrors.RequestFailedError{
			URL:      url,
			Attempts: attempts,
			Err:      lastErr,
		}
	}

	return body, nil
}

// attempt performs a single bounded request
func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.opts.AttemptTimeout)
	defer cancel()

	resp, err := f.client.Get(attemptCtx, url)
	if err != nil {
		return nil, f.classify(ctx, attemptCtx, url, err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &coreerrors.HTTPStatusError{StatusCode: resp.StatusCode(), URL: url}
	}

	data, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, f.classify(ctx, attemptCtx, url, fmt.Errorf("read body: %w", err))
	}

	return data, nil
}

// classify tags errors caused by the attempt deadline, leaving parent cancellation untouched
func (f *Fetcher) classify(parent, attemptCtx context.Context, url string, err error) error {
	if parent.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &coreerrors.TimeoutError{URL: url, Timeout: f.opts.AttemptTimeout}
	}
	return err
}

func (f *Fetcher) newBackOff() *exponentialJitter {
	return &exponentialJitter{
		base:   f.opts.BaseDelay,
		jitter: f.opts.Jitter,
	}
}

// exponentialJitter yields base * 2^i * (1 + jitter) for the i-th retry
type exponentialJitter struct {
	base    time.Duration
	jitter  func() float64
	attempt int
}

// NextBackOff implements backoff.BackOff
func (b *exponentialJitter) NextBackOff() time.Duration {
	factor := math.Pow(2, float64(b.attempt)) * (1 + b.jitter()*maxJitter)
	b.attempt++
	return time.Duration(float64(b.base) * factor)
}

// Reset implements backoff.BackOff
func (b *exponentialJitter) Reset() {
	b.attempt = 0
}
