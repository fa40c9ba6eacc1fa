// ABOUTME: Standard HTTP client implementation used for proxy and registry requests
// ABOUTME: Sets request headers and logs outgoing calls; retries live in core/retry

package standard

import (
	"context"
	"net/http"
	"time"

	"portfolio-feeds-api/core/interfaces"
)

const (
	userAgent    = "PortfolioFeeds/1.0"
	acceptHeader = "application/json, application/rss+xml;q=0.9, application/xml;q=0.8, */*;q=0.5"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// The timeout is an upper bound; callers bound individual attempts through ctx.
func NewStandardHTTPClient(timeout time.Duration, logger interfaces.Logger) *StandardHTTPClient {
	var transport http.RoundTripper = http.DefaultTransport
	if logger != nil {
		transport = &loggingRoundTripper{transport: transport, logger: logger}
	}

	return &StandardHTTPClient{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Get performs an HTTP GET request
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       resp.Body,
		headers:    resp.Header,
	}, nil
}
