package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/quocvuong92/ai-exec/internal/config"
)

// Retry configuration for translation calls
const (
	MaxAPIRetryAttempts = 3
	APIInitialBackoff   = 500 * time.Millisecond
	APIMaxBackoff       = 5 * time.Second
	BackoffMultiplier   = 2.0
)

// RetryableStatusCodes are HTTP status codes that should trigger a retry
var RetryableStatusCodes = []int{
	http.StatusTooManyRequests,     // 429 - Rate limited
	http.StatusServiceUnavailable,  // 503 - Service unavailable
	http.StatusGatewayTimeout,      // 504 - Gateway timeout
	http.StatusBadGateway,          // 502 - Bad gateway
	http.StatusInternalServerError, // 500 - Internal server error (transient)
}

// backoff is swapped out by tests
var backoff = CalculateAPIBackoff

// ShouldRotateKey checks if the status code means the next API key should be tried
func ShouldRotateKey(statusCode int) bool {
	for _, code := range config.RotatableErrorCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// ShouldRetryAPICall checks if the status code indicates a transient failure
func ShouldRetryAPICall(statusCode int) bool {
	for _, code := range RetryableStatusCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// CalculateAPIBackoff returns the backoff duration for a retry attempt
func CalculateAPIBackoff(attempt int) time.Duration {
	d := APIInitialBackoff
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * BackoffMultiplier)
		if d > APIMaxBackoff {
			return APIMaxBackoff
		}
	}
	return d
}

// RetryableFunc is a function that can be retried
type RetryableFunc[T any] func() (T, error)

// WithRetry executes fn, retrying *APIError results whose status is
// retryable with exponential backoff. Any other error returns immediately.
func WithRetry[T any](ctx context.Context, fn RetryableFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt < MaxAPIRetryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("operation cancelled: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !ShouldRetryAPICall(apiErr.StatusCode) {
			return zero, err
		}

		if attempt < MaxAPIRetryAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("operation cancelled: %w", ctx.Err())
			case <-time.After(backoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("max retry attempts (%d) exceeded: %w", MaxAPIRetryAttempts, lastErr)
}
