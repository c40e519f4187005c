package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API failure so callers can branch without inspecting
// status codes or error strings.
type Kind int

const (
	// KindUnknown covers failures that fit no other category.
	KindUnknown Kind = iota
	// KindNetwork means no response was received at all.
	KindNetwork
	// KindUnauthorized means the server rejected the credential (HTTP 401).
	// The client never reacts to this itself; invalidating the session is
	// the session controller's decision.
	KindUnauthorized
	// KindValidation means the request was rejected with field errors (4xx).
	KindValidation
	// KindRateLimited means the request was throttled twice in a row (429).
	KindRateLimited
	// KindServer means the server failed (5xx).
	KindServer
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every Client method.
type Error struct {
	// Kind is the failure category.
	Kind Kind

	// Status is the HTTP status code, 0 when no response was received.
	Status int

	// Message is the server-provided or synthesized failure description.
	Message string

	// Fields holds per-field validation messages for KindValidation.
	Fields map[string]string

	// RequestID is the X-Request-ID the failed request carried.
	RequestID string

	// Cause is the underlying transport error, if any.
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError extracts an *Error from err, if there is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is an API unauthorized failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindUnauthorized
}

// IsNetwork reports whether err is a network-level failure.
func IsNetwork(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNetwork
}

// IsRateLimited reports whether err is a rate-limit failure.
func IsRateLimited(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindRateLimited
}

// classifyStatus maps an HTTP status to a failure kind.
func classifyStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindValidation
	default:
		return KindUnknown
	}
}
