package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
)

// APIError is a non-2xx (or undecodable 2xx) response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend-supplied message, or the status text.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Is classifies the error by status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return isUnauthorized(e.StatusCode)
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServer:
		return !isUnauthorized(e.StatusCode) && e.StatusCode != http.StatusNotFound
	}
	return false
}

func isUnauthorized(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// Message returns the text to show a user for err: the backend message of
// an *APIError, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
