// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with a Wrap() method to wrap errors without resorting
// to fmt.Errorf("%w", err).
package errors

import (
	stderr "errors"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// Sentinel errors are declared with New and wrapped with Wrap: the wrapped
// error is a new value, so sentinels shared across packages are never mutated.
type Error struct {
	msg    string
	err    error
	parent *Error
}

// Error message, followed by the nested cause when any
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error. The returned error matches e with Is.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, parent: e.root()}
}

// WrapMessage wraps a nested error with a more specific message.
func (e *Error) WrapMessage(msg string, err error) *Error {
	return &Error{msg: e.msg + ": " + msg, err: err, parent: e.root()}
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.parent != nil {
		return e.parent
	}
	return e
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
