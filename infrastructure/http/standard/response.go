package standard

import (
	"io"
	"net/http"
	"time"

	"portfolio-feeds-api/core/interfaces"
)

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}

// loggingRoundTripper logs outgoing proxy requests at debug level
type loggingRoundTripper struct {
	transport http.RoundTripper
	logger    interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests
func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug("Outgoing HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"host":     req.URL.Host,
			"duration": duration.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	t.logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"method":   req.Method,
		"host":     req.URL.Host,
		"status":   resp.StatusCode,
		"duration": duration.String(),
	})

	return resp, nil
}
