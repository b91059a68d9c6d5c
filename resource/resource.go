// Package resource provides the tri-state envelope used to report the
// outcome of an asynchronous request: Loading, Success or Error.
package resource

import "fmt"

// Kind identifies which state a Resource is in
type Kind int

const (
	// KindLoading means the request has started and not finished yet
	KindLoading Kind = iota
	// KindSuccess means the request finished with data
	KindSuccess
	// KindError means the request failed
	KindError
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "Loading"
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Resource carries a tag plus the payload that belongs to it.
// Data is only meaningful for KindSuccess, Message only for KindError.
type Resource[T any] struct {
	kind    Kind
	data    T
	message string
}

// Loading returns a Resource in the loading state
func Loading[T any]() Resource[T] {
	return Resource[T]{kind: KindLoading}
}

// Success returns a Resource holding data
func Success[T any](data T) Resource[T] {
	return Resource[T]{kind: KindSuccess, data: data}
}

// Error returns a Resource holding a failure message
func Error[T any](message string) Resource[T] {
	return Resource[T]{kind: KindError, message: message}
}

// Kind returns the state tag
func (r Resource[T]) Kind() Kind {
	return r.kind
}

// Data returns the payload of a successful Resource
func (r Resource[T]) Data() T {
	return r.data
}

// Message returns the failure message of an errored Resource
func (r Resource[T]) Message() string {
	return r.message
}

// IsTerminal reports whether the Resource is Success or Error
func (r Resource[T]) IsTerminal() bool {
	return r.kind == KindSuccess || r.kind == KindError
}

// Handlers groups one callback per state. Match refuses a Handlers value
// with a missing callback, so every consumer deals with all three states.
type Handlers[T any] struct {
	Loading func()
	Success func(data T)
	Error   func(message string)
}

// Match dispatches r to the handler for its state
func Match[T any](r Resource[T], h Handlers[T]) {
	if h.Loading == nil || h.Success == nil || h.Error == nil {
		panic("resource: Match requires Loading, Success and Error handlers")
	}

	switch r.kind {
	case KindLoading:
		h.Loading()
	case KindSuccess:
		h.Success(r.data)
	case KindError:
		h.Error(r.message)
	default:
		panic(fmt.Sprintf("resource: unhandled kind %v", r.kind))
	}
}
