package handlers

import (
	"fmt"
	"testing"

	"portfolio-feeds-api/core/errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
			expectedInMsg:  "",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &errors.NotFoundError{Resource: "feed", ID: "7"},
			expectedStatus: 404,
			expectedInMsg:  "feed not found",
		},
		{
			name:           "ValidationError returns 400",
			input:          &errors.ValidationError{Field: "rss", Message: "required"},
			expectedStatus: 400,
			expectedInMsg:  "'rss': required",
		},
		{
			name:           "retry limit returns 429",
			input:          errors.ErrRetryLimitReached,
			expectedStatus: 429,
			expectedInMsg:  "Retry limit reached",
		},
		{
			name:           "ConfigurationError returns 503 with its message",
			input:          &errors.ConfigurationError{Message: "No blog feeds configured"},
			expectedStatus: 503,
			expectedInMsg:  "No blog feeds configured",
		},
		{
			name:           "closed store returns 503",
			input:          errors.ErrStoreClosed,
			expectedStatus: 503,
			expectedInMsg:  "shutting down",
		},
		{
			name:           "wrapped NotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &errors.NotFoundError{Resource: "feed", ID: "2"}),
			expectedStatus: 404,
			expectedInMsg:  "feed not found",
		},
		{
			name:           "wrapped ConfigurationError returns 503",
			input:          fmt.Errorf("reload: %w", &errors.ConfigurationError{Message: "Invalid blog registry"}),
			expectedStatus: 503,
			expectedInMsg:  "Invalid blog registry",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("some unknown error"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			humaErr, ok := result.(*huma.ErrorModel)
			assert.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedInMsg)
		})
	}
}
