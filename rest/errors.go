package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common failure cases.
var (
	// ErrRequestFailed indicates a non-2xx response from the server.
	ErrRequestFailed = errors.New("rest: request failed")
	// ErrMissingConfig indicates an incomplete client configuration.
	ErrMissingConfig = errors.New("rest: missing configuration")
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Method     string // request method.
	Path       string // request path.
	StatusCode int    // HTTP status code.
	Code       string // machine-readable error code, when the server sends one.
	Message    string // human-readable message, when the server sends one.
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("rest: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Code != "" {
		msg += fmt.Sprintf(" (code=%s)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether the target matches the sentinel error for APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrRequestFailed
}

// NewAPIError creates a new APIError.
func NewAPIError(method, path string, status int) *APIError {
	return &APIError{Method: method, Path: path, StatusCode: status}
}

// IsNotFound reports whether err is a server response with status 404.
func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// ConfigError represents a client configuration error.
type ConfigError struct {
	Option  string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rest: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option, message string) *ConfigError {
	return &ConfigError{Option: option, Message: message}
}
