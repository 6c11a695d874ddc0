package eleven

import (
	"errors"
	"fmt"
)

// Error represents an ElevenLabs API error.
type Error struct {
	// HTTPStatus is the HTTP status code of the failed request.
	HTTPStatus int

	// Status is the machine-readable status string from the error body,
	// e.g. "invalid_api_key", when present.
	Status string

	// Message is the human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("eleven: %s (status=%s, http=%d)", e.Message, e.Status, e.HTTPStatus)
	}
	return fmt.Sprintf("eleven: %s (http=%d)", e.Message, e.HTTPStatus)
}

// IsRateLimit returns true if this is a rate limit error.
func (e *Error) IsRateLimit() bool {
	return e.HTTPStatus == 429
}

// IsInvalidAPIKey returns true if the API key was rejected.
func (e *Error) IsInvalidAPIKey() bool {
	return e.HTTPStatus == 401
}

// IsServerError returns true if this is a server-side error.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// Retryable returns true if the request can be retried.
func (e *Error) Retryable() bool {
	return e.IsRateLimit() || e.IsServerError()
}

// AsError extracts *Error from an error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
