// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"portfolio-feeds-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if stderrors.Is(err, errors.ErrRetryLimitReached) {
		return huma.Error429TooManyRequests("Retry limit reached for this feed")
	}

	if errors.IsConfiguration(err) {
		var configErr *errors.ConfigurationError
		stderrors.As(err, &configErr)
		return huma.Error503ServiceUnavailable(configErr.Message, err)
	}

	if stderrors.Is(err, errors.ErrStoreClosed) {
		return huma.Error503ServiceUnavailable("Service is shutting down")
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
