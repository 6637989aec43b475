package platform

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBaseURL   = errors.New("platform API URL is required")
	ErrInvalidBaseURL   = errors.New("invalid platform API URL")
	ErrUnexpectedStatus = errors.New("unexpected platform API status")
	ErrDecodeResponse   = errors.New("failed to decode platform API response")
	ErrRequestFailed    = errors.New("platform API request failed")
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string // truncated response body
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("platform API %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *APIError) Unwrap() error { return ErrUnexpectedStatus }

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
