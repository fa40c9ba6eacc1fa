package interfaces

import (
	"context"
	"io"
)

// HTTPClient performs single GET requests against proxy services and the
// feed registry. It never retries; core/retry layers attempts on top and
// bounds each one through ctx.
type HTTPClient interface {
	// Get performs one GET request. Non-2xx statuses are returned as a
	// Response, not an error.
	Get(ctx context.Context, url string) (Response, error)
}

// Response is the part of an HTTP response the pipeline reads
type Response interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int

	// Body returns the response body. The caller closes it.
	Body() io.ReadCloser

	// Header returns the named header, or "" when absent.
	Header(key string) string
}
