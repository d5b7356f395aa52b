package apperr

import "errors"

// Typed failures surfaced by the data-fetch pipeline. Classification
// happens at the transport binding (HTTP status codes), not by matching
// on error message text.
var (
	// ErrStockNotFound means the provider returned no price history for
	// the requested code. Fatal for the request, never retried.
	ErrStockNotFound = errors.New("stock not found")

	// ErrRateLimited means the provider signaled throttling (HTTP 429).
	ErrRateLimited = errors.New("provider rate limited")

	// ErrRetryExhausted means the fetch kept failing after all retry
	// attempts for a non-rate-limit reason.
	ErrRetryExhausted = errors.New("retries exhausted")
)
