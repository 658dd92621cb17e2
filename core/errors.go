package core

import (
	"errors"
	"net/http"
)

// Kind classifies a failure at the point where it occurs so boundaries can
// map it to a transport status code without inspecting message text.
type Kind string

const (
	// KindValidation indicates a malformed or missing required field.
	KindValidation Kind = "validation"
	// KindAuth indicates rejected credentials.
	KindAuth Kind = "authentication"
	// KindForbidden indicates the credentials lack permission.
	KindForbidden Kind = "authorization"
	// KindNotFound indicates a missing resource (e.g. unknown model id).
	KindNotFound Kind = "not_found"
	// KindConflict indicates a state conflict.
	KindConflict Kind = "conflict"
	// KindRateLimit indicates the provider throttled the request.
	KindRateLimit Kind = "rate_limit"
	// KindProvider indicates any other upstream provider failure.
	KindProvider Kind = "provider"
	// KindInternal indicates an unexpected internal failure.
	KindInternal Kind = "internal"
)

// Error is a kind-tagged error. Message is safe to surface to callers; Err
// retains the underlying cause for unwrapping.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// NewError creates a kind-tagged error with a caller-facing message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError tags an existing error with a kind, preserving it as the cause.
func WrapError(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, walking the unwrap chain. Untagged errors
// report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// KindForStatus maps an upstream HTTP status code to an error kind. Provider
// adapters use it to tag SDK failures at the point of failure.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindProvider
	}
}

// HTTPStatus maps an error kind back to the transport status a boundary
// should respond with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
