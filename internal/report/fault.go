// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const (
	// KindInternal is an unexpected fault: a bug or a broken environment.
	KindInternal Kind = iota
	// KindUser is a fault the user can fix by changing their input.
	KindUser
)

// ErrMissingMessage marks a user fault that carried no message.
var ErrMissingMessage = errors.New("user error found with no message")

type (
	// Kind is a fault category.
	Kind int

	// UserFaulter is implemented by errors meant for the end user.
	UserFaulter interface {
		UserFault() bool
	}

	// UserError is a fault caused by user input, carrying a message meant
	// for the end user.
	UserError struct {
		msg   string
		cause error
	}

	// PanicError is a recovered panic turned into an internal fault.
	PanicError struct {
		Value any
		stack []byte
	}

	stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
)

// String returns "user" or "internal".
func (k Kind) String() string {
	if k == KindUser {
		return "user"
	}
	return "internal"
}

// NewUserError returns a user fault with a formatted message.
func NewUserError(format string, a ...any) *UserError {
	return &UserError{msg: fmt.Sprintf(format, a...)}
}

// WrapUserError returns a user fault with msg that wraps cause.
func WrapUserError(cause error, msg string) *UserError {
	return &UserError{msg: msg, cause: cause}
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap returns the wrapped cause, if any.
func (e *UserError) Unwrap() error { return e.cause }

// UserFault marks the error as caused by user input.
func (e *UserError) UserFault() bool { return true }

// NewPanicError captures the current goroutine stack for a recovered value.
func NewPanicError(v any) *PanicError {
	return &PanicError{Value: v, stack: debug.Stack()}
}

// Error implements the error interface.
func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Stack returns the stack captured at recovery.
func (e *PanicError) Stack() []byte { return e.stack }

// Classify returns the category of err. A user fault whose message is blank
// is a programming error and classifies as internal.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var uf UserFaulter
	if errors.As(err, &uf) && uf.UserFault() && strings.TrimSpace(err.Error()) != "" {
		return KindUser
	}
	return KindInternal
}

// WithStack attaches the caller's stack to err unless one is already present
// somewhere in its chain.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var st stackTracer
	var pe *PanicError
	if errors.As(err, &st) || errors.As(err, &pe) {
		return err
	}
	return pkgerrors.WithStack(err)
}

// StackTrace renders the stack carried by err, or "" when none is present.
func StackTrace(err error) string {
	var pe *PanicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	var st stackTracer
	if errors.As(err, &st) {
		return strings.TrimLeft(fmt.Sprintf("%+v", st.StackTrace()), "\n")
	}
	return ""
}
