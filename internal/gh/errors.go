package gh

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v82/github"
)

// APIError is a request the server rejected. It carries the HTTP status and
// enough rate-limit context for callers to act on the failure without
// re-parsing response headers. Only this package constructs it.
type APIError struct {
	StatusCode int
	Message    string

	// RateRemaining is the remaining-quota header value, nil when the header
	// was absent from the response.
	RateRemaining *int

	// ResetAt is the quota reset time, zero when unknown.
	ResetAt time.Time
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github: request failed with status %d", e.StatusCode)
	}

	return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// AuthFailed reports whether the server rejected the credentials.
func (e *APIError) AuthFailed() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// RateLimited reports whether this is the platform's rate-limit signal: a 403
// carrying a zero remaining-quota header.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusForbidden && e.RateRemaining != nil && *e.RateRemaining == 0
}

// RateLimitReset returns the quota reset time when the response carried one.
func (e *APIError) RateLimitReset() (time.Time, bool) {
	if e.ResetAt.IsZero() {
		return time.Time{}, false
	}

	return e.ResetAt, true
}

// NetworkError is a transport-level failure: no HTTP response was obtained.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RetryExhaustedError is returned when an operation kept hitting the rate
// limit through every allowed retry.
type RetryExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("rate limit retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// IsRateLimited reports whether err is the platform's rate-limit signal.
func IsRateLimited(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.RateLimited()
}

// IsAuthFailed reports whether err is an authentication failure.
func IsAuthFailed(err error) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.AuthFailed()
}

// classify maps a go-github error into the package taxonomy. A nil err maps
// to nil; anything that never reached the server becomes a NetworkError.
func classify(op string, resp *github.Response, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		zero := 0

		return &APIError{
			StatusCode:    http.StatusForbidden,
			Message:       rateErr.Message,
			RateRemaining: &zero,
			ResetAt:       rateErr.Rate.Reset.Time,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		zero := 0

		apiErr := &APIError{
			StatusCode:    http.StatusForbidden,
			Message:       abuseErr.Message,
			RateRemaining: &zero,
		}

		if abuseErr.RetryAfter != nil {
			apiErr.ResetAt = time.Now().Add(*abuseErr.RetryAfter)
		}

		return apiErr
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		apiErr := &APIError{Message: respErr.Message}

		if respErr.Response != nil {
			apiErr.StatusCode = respErr.Response.StatusCode
		}

		// Rate fields are zero-valued when the headers were absent; only a
		// response that actually carried the header marks the error as
		// rate-limit-classifiable.
		if resp != nil && resp.Response != nil && resp.Header.Get("X-RateLimit-Remaining") != "" {
			remaining := resp.Rate.Remaining
			apiErr.RateRemaining = &remaining
			apiErr.ResetAt = resp.Rate.Reset.Time
		}

		return apiErr
	}

	return &NetworkError{Op: op, Err: err}
}
