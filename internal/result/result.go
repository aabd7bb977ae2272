// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package result implements the tri-state result that every weather query emits.
// A query always starts with Loading and ends with either Success or Failure.
package result

// State names the variant of a Result.
type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateFailure State = "error"
)

// Result is implemented by Loading, Success and Failure only.
type Result[T any] interface {
	State() State
	sealed(T)
}

// Loading signals that a query is in flight.
type Loading[T any] struct{}

// Success carries the data of a completed query.
type Success[T any] struct {
	Data T
}

// Failure carries a user facing message and the underlying error.
type Failure[T any] struct {
	Message string
	Err     error
}

func (Loading[T]) State() State { return StateLoading }
func (Success[T]) State() State { return StateSuccess }
func (Failure[T]) State() State { return StateFailure }

func (Loading[T]) sealed(T) {}
func (Success[T]) sealed(T) {}
func (Failure[T]) sealed(T) {}

func (f Failure[T]) Error() string {
	return f.Message
}

func (f Failure[T]) Unwrap() error {
	return f.Err
}

// IsTerminal reports whether res is Success or Failure.
func IsTerminal[T any](res Result[T]) bool {
	switch res.(type) {
	case Success[T], Failure[T]:
		return true
	default:
		return false
	}
}

// Data returns the data of a Success and false for every other variant.
func Data[T any](res Result[T]) (T, bool) {
	if s, ok := res.(Success[T]); ok {
		return s.Data, true
	}
	var zero T
	return zero, false
}

// Message returns the message of a Failure, or an empty string.
func Message[T any](res Result[T]) string {
	if f, ok := res.(Failure[T]); ok {
		return f.Message
	}
	return ""
}
