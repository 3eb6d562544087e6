package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/cockroachdb/errors"
)

// PanicError is a recovered panic turned into an error. gonum reports shape
// mismatches by panicking with mat.ErrShape, so public entry points that hand
// user matrices to gonum recover into this type.
type PanicError struct {
	// PanicValue is the value passed to panic.
	PanicValue interface{}

	// StackTrace is the goroutine stack captured at recovery.
	StackTrace string

	// Operation is the entry point that recovered, e.g. "MDA.Transform".
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap exposes the panic value when it is an error, so that
// errors.Is(err, mat.ErrShape) holds.
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// String is Error followed by the captured stack.
func (e *PanicError) String() string {
	return fmt.Sprintf("%s\nStack trace:\n%s", e.Error(), e.StackTrace)
}

// NewPanicError captures the current stack for a panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover must be deferred directly by a function with a named error result:
//
//	func (m *MDA) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
//	    defer errors.Recover(&err, "MDA.Transform")
//	    ...
//	}
//
// A panic becomes a *PanicError. If err was already set, it is kept as the
// cause and the panic is recorded in the message.
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	if *err != nil {
		*err = errors.Wrapf(*err, "panic in %s: %v", operation, r)
		return
	}
	*err = NewPanicError(operation, r)
}

// SafeExecute runs fn and returns its error, or a *PanicError if it panics.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
