package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ConfigError reports a malformed or missing provider configuration field.
// Configuration problems abort session setup; they are never silently defaulted.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider config: %s: %s", e.Field, e.Message)
}

// ErrorKind categorizes a failed provider exchange.
type ErrorKind string

const (
	// ErrUnauthorized marks rejected credentials (HTTP 401/403).
	ErrUnauthorized ErrorKind = "unauthorized"
	// ErrRateLimited marks quota exhaustion (HTTP 429).
	ErrRateLimited ErrorKind = "rate_limited"
	// ErrTimeout marks a deadline expiring before the reply arrived.
	ErrTimeout ErrorKind = "timeout"
	// ErrMalformed marks a reply that could not be parsed into the Response union.
	ErrMalformed ErrorKind = "malformed"
	// ErrUnreachable marks transport-level failure to reach the endpoint.
	ErrUnreachable ErrorKind = "unreachable"
)

// Error is the structured failure an adapter surfaces when the remote
// exchange fails. The caller decides whether to retry; the adapter never does.
type Error struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
	Err    error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("provider error [%s]: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("provider error [%s]", e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewError builds a structured provider error wrapping its cause.
func NewError(kind ErrorKind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}

// Classify maps a transport error and optional HTTP status to the error
// taxonomy. Adapters call it after extracting whatever status their SDK
// exposes; status 0 means no HTTP response was received.
func Classify(err error, status int) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewError(ErrTimeout, "request deadline exceeded", err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewError(ErrUnauthorized, fmt.Sprintf("endpoint rejected credentials (status %d)", status), err)
	case status == http.StatusTooManyRequests:
		return NewError(ErrRateLimited, "endpoint rate limited the request", err)
	case status >= 400:
		return NewError(ErrMalformed, fmt.Sprintf("endpoint returned status %d", status), err)
	default:
		return NewError(ErrUnreachable, err.Error(), err)
	}
}
