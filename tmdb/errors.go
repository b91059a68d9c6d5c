package tmdb

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMissingAPIKey indicates the client was built without a bearer token
	ErrMissingAPIKey = errors.New("please add your API key")
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
)

// Kind classifies a failed catalog call
type Kind int

const (
	// KindServiceUnavailable covers transport failures: no connection, DNS, timeout
	KindServiceUnavailable Kind = iota + 1
	// KindClientError covers HTTP 400-499
	KindClientError
	// KindServerError covers HTTP 500 and 2xx bodies that fail to decode
	KindServerError
	// KindUnknownError covers any other non-2xx status
	KindUnknownError
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	case KindClientError:
		return "ClientError"
	case KindServerError:
		return "ServerError"
	case KindUnknownError:
		return "UnknownError"
	default:
		return "Unclassified"
	}
}

// Sentinels for errors.Is matching by kind
var (
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
	ErrClientError        = &Error{Kind: KindClientError}
	ErrServerError        = &Error{Kind: KindServerError}
	ErrUnknownError       = &Error{Kind: KindUnknownError}
)

// Error is the only error type returned by catalog calls
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("something went wrong: %s", e.Kind)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsServiceUnavailable checks if the error indicates a transport failure
func (e *Error) IsServiceUnavailable() bool {
	return e.Kind == KindServiceUnavailable
}

// IsClientError checks if the error indicates a 4xx response
func (e *Error) IsClientError() bool {
	return e.Kind == KindClientError
}

// IsServerError checks if the error indicates a 500 or an undecodable body
func (e *Error) IsServerError() bool {
	return e.Kind == KindServerError
}

func newError(kind Kind, status int, cause error) *Error {
	return &Error{Kind: kind, StatusCode: status, Err: cause}
}

// classifyStatus maps an HTTP status to an error kind. ok is true for 2xx.
func classifyStatus(status int) (kind Kind, ok bool) {
	switch {
	case status >= 200 && status <= 299:
		return 0, true
	case status >= 400 && status <= 499:
		return KindClientError, false
	case status == 500:
		return KindServerError, false
	default:
		return KindUnknownError, false
	}
}

// KindOf returns the kind of a catalog error, or 0 if err is not one
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
