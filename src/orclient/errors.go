package orclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNoAPIKey indicates the API key is missing.
	ErrNoAPIKey = errors.New("API key is required")

	// ErrEmptyResponse indicates the API returned no choices.
	ErrEmptyResponse = errors.New("empty response from API")

	// ErrModelNotFound indicates the requested model is not served.
	ErrModelNotFound = errors.New("model not found")

	// ErrRateLimited indicates rate limiting.
	ErrRateLimited = errors.New("rate limited")
)

// ErrorResponse matches the OpenRouter error format:
// {"error":{"message":"...","code":"..."}}
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError represents an error response from the OpenRouter API.
type APIError struct {
	StatusCode int
	Type       string `json:"type"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	Param      string `json:"param"`
	RequestID  string
	// RetryAfter is populated from the Retry-After header on 429 responses.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the request may succeed on a later attempt.
func (e *APIError) IsRetryable() bool {
	if e.StatusCode >= 500 && e.StatusCode < 600 {
		return true
	}
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	switch e.Code {
	case "timeout", "connection_error", "server_error":
		return true
	}
	return false
}

// IsRateLimit returns true if this is a rate limit error.
func (e *APIError) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == "rate_limit_exceeded"
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == "invalid_api_key"
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsRetryable()
	}
	return errors.Is(err, ErrRateLimited)
}

// RetryDelayFor returns the delay before the given attempt (1-based). A rate
// limit response with a Retry-After header wins over the backoff schedule.
func RetryDelayFor(err error, attempt int) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimit() && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}

	// Exponential backoff: 1s, 2s, 4s, ... capped at a minute.
	delay := time.Second * time.Duration(1<<uint(attempt-1))
	if delay > time.Minute {
		delay = time.Minute
	}
	return delay
}
