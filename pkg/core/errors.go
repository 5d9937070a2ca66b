package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of a client error.
type ErrorType int

// Error type constants categorize errors for programmatic handling.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeUsage indicates invalid or missing arguments detected before
	// any network call.
	ErrorTypeUsage
	// ErrorTypeNetwork indicates the request never produced an HTTP response.
	ErrorTypeNetwork
	// ErrorTypeTransport indicates a non-200 HTTP status.
	ErrorTypeTransport
	// ErrorTypeAPI indicates a non-zero code in the response envelope.
	ErrorTypeAPI
	// ErrorTypeSymbolCache indicates a symbol absent from the formatting
	// metadata cache.
	ErrorTypeSymbolCache
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"USAGE",
		"NETWORK",
		"TRANSPORT",
		"API",
		"SYMBOL_CACHE",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoSecret is returned when signing is attempted without an API secret
	// from either the payload or the credential store.
	ErrNoSecret = errors.New("api secret is required")
	// ErrNoCredentials is returned when an authenticated call is made on a
	// client constructed without credentials.
	ErrNoCredentials = errors.New("no credentials configured")
)

// ExchangeError represents a structured error from the client or the exchange.
// It provides the error category plus whatever transport and application
// detail was available when it occurred.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code, when a response was received.
	StatusCode int `json:"status_code,omitempty"`
	// Code is the application error code from the response envelope.
	Code int `json:"code,omitempty"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Raw contains the raw response body for debugging, when available.
	Raw string `json:"raw,omitempty"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface for ExchangeError.
func (e *ExchangeError) Error() string {
	switch e.Type {
	case ErrorTypeTransport:
		return fmt.Sprintf("%s (%d): %s", e.Type, e.StatusCode, e.Message)
	case ErrorTypeAPI:
		return fmt.Sprintf("%s (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewUsageError creates an ExchangeError for invalid arguments detected
// before any network activity.
func NewUsageError(message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeUsage,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewNetworkError creates an ExchangeError wrapping a transport-level failure
// that produced no HTTP response.
func NewNetworkError(err error) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeNetwork,
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
}

// NewTransportError creates an ExchangeError for a non-200 HTTP status.
// The raw body is retained verbatim; it is not assumed to be JSON.
func NewTransportError(statusCode int, body string) *ExchangeError {
	return &ExchangeError{
		Type:       ErrorTypeTransport,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("request failed with status code %d", statusCode),
		Raw:        body,
		Timestamp:  time.Now(),
	}
}

// NewAPIError creates an ExchangeError for a non-zero envelope code.
func NewAPIError(code int, message string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeAPI,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewSymbolCacheError creates an ExchangeError for a symbol missing from the
// formatting metadata cache.
func NewSymbolCacheError(symbol string) *ExchangeError {
	return &ExchangeError{
		Type:      ErrorTypeSymbolCache,
		Message:   fmt.Sprintf("symbol %q not present in formatting cache", symbol),
		Timestamp: time.Now(),
	}
}

// IsUsageError returns true if the error is an argument-validation failure.
func IsUsageError(err error) bool {
	return isErrorType(err, ErrorTypeUsage)
}

// IsNetworkError returns true if the request failed before any HTTP response.
func IsNetworkError(err error) bool {
	return isErrorType(err, ErrorTypeNetwork)
}

// IsTransportError returns true if the error is a non-200 HTTP status.
func IsTransportError(err error) bool {
	return isErrorType(err, ErrorTypeTransport)
}

// IsAPIError returns true if the error is a non-zero envelope code.
func IsAPIError(err error) bool {
	return isErrorType(err, ErrorTypeAPI)
}

// IsSymbolCacheError returns true if the error is a formatting-cache miss.
func IsSymbolCacheError(err error) bool {
	return isErrorType(err, ErrorTypeSymbolCache)
}

func isErrorType(err error, t ErrorType) bool {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr.Type == t
	}
	return false
}
