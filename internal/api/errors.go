package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError wraps a transport-level failure (connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response carrying the server's error payload.
type ServerError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// MalformedResponse means the server answered 2xx with a body the client
// could not decode.
type MalformedResponse struct {
	Err error
}

func (e *MalformedResponse) Error() string { return fmt.Sprintf("malformed response: %v", e.Err) }
func (e *MalformedResponse) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the server. The caller
// decides what to do about the session; this package only classifies.
func IsUnauthorized(err error) bool {
	var se *ServerError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}
