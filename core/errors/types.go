// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for the fetch pipeline and API responses

package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotImplemented is returned by proxy strategies that cannot decode their source
	ErrNotImplemented = errors.New("not implemented")

	// ErrRetryLimitReached is returned when a feed used up its manual retries
	ErrRetryLimitReached = errors.New("retry limit reached")

	// ErrStoreClosed is returned by operations on a closed feed store
	ErrStoreClosed = errors.New("feed store closed")
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// TimeoutError represents a single request that exceeded its deadline
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Timeout)
}

// HTTPStatusError represents a non-success status from an upstream service
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// DecodeError represents a proxy response that did not match its expected shape
type DecodeError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s response: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("decode %s response: %s", e.Source, e.Message)
}

// Unwrap returns the underlying cause
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RequestFailedError is returned once every retry attempt for a request failed.
// Err holds the final attempt's error.
type RequestFailedError struct {
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface
func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the final attempt's error
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// AllSourcesExhaustedError is returned when no proxy strategy produced items.
// Message is safe to show to end users.
type AllSourcesExhaustedError struct {
	Feed    string
	Message string
	Errs    []error
}

// Error implements the error interface
func (e *AllSourcesExhaustedError) Error() string {
	return fmt.Sprintf("all sources exhausted for %s: %s", e.Feed, e.Message)
}

// Unwrap returns the per-strategy errors
func (e *AllSourcesExhaustedError) Unwrap() []error {
	return e.Errs
}

// ConfigurationError represents a missing or malformed feed registry
type ConfigurationError struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap returns the underlying cause
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTimeout checks if an error is or wraps a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// HTTPStatus returns the status code of a wrapped HTTPStatusError
func HTTPStatus(err error) (int, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}
