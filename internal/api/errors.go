package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single error channel for every façade call: any non-2xx
// response is converted into one of these, carrying the server-supplied
// message when the body provides it.
type Error struct {
	Op      string // operation name, e.g. "sendnotification"
	Status  int    // HTTP status code
	Message string // server message, or the raw status text
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: request failed with status %d", e.Op, e.Status)
}

// IsAuthFailure reports whether the server rejected the bearer token or the
// credentials. A stale token is only discovered here, there is no proactive
// expiry check.
func (e *Error) IsAuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// AsError unwraps err into an *Error if it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody is the shape the server uses for failure payloads.
type errorBody struct {
	Message string `json:"message"`
}
