// SPDX-License-Identifier: MPL-2.0

package args

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateSource is the sentinel wrapped by DuplicateSourceError.
	ErrDuplicateSource = errors.New("duplicate argument source")
	// ErrDuplicateArgument is the sentinel wrapped by DuplicateArgumentError.
	ErrDuplicateArgument = errors.New("duplicate argument declaration")
	// ErrInvalidDeclaration is the sentinel wrapped by InvalidDeclarationError.
	ErrInvalidDeclaration = errors.New("invalid argument declaration")
	// ErrUnknownSource is returned when loading a source that was never registered.
	ErrUnknownSource = errors.New("unknown argument source")
	// ErrInvalidCommandLine is the sentinel wrapped by ArgumentError.
	ErrInvalidCommandLine = errors.New("invalid command line")
	// ErrConversion is the sentinel wrapped by ConversionError.
	ErrConversion = errors.New("argument conversion failed")
)

type (
	// DuplicateSourceError is returned when a source name is registered twice.
	// It is a programming error in the tool, not a user fault.
	DuplicateSourceError struct {
		Name string
	}

	// DuplicateArgumentError is returned when a full or short name is declared
	// by more than one source.
	DuplicateArgumentError struct {
		Name     string
		Short    bool
		Source   string
		Existing string
	}

	// InvalidDeclarationError is returned for a declaration whose names cannot
	// be matched on a command line.
	InvalidDeclarationError struct {
		Source string
		Name   string
		Reason string
	}

	// ArgumentError reports a malformed command line. It is always a user fault.
	// Either Message or Violations is set.
	ArgumentError struct {
		Message    string
		Violations []Violation
	}

	// ConversionError reports a value that could not be converted to the
	// declared kind of its argument. It is a user fault.
	ConversionError struct {
		Argument string
		Value    string
		Kind     Kind
		Err      error
	}
)

// NewArgumentError returns an ArgumentError with a single free-form message.
func NewArgumentError(format string, a ...any) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf(format, a...)}
}

// Error implements the error interface.
func (e *DuplicateSourceError) Error() string {
	return fmt.Sprintf("argument source %q is already registered", e.Name)
}

// Unwrap returns ErrDuplicateSource for errors.Is compatibility.
func (e *DuplicateSourceError) Unwrap() error { return ErrDuplicateSource }

// Error implements the error interface.
func (e *DuplicateArgumentError) Error() string {
	what := "full name"
	if e.Short {
		what = "short name"
	}
	return fmt.Sprintf("argument %s %q declared by source %q is already declared by source %q", what, e.Name, e.Source, e.Existing)
}

// Unwrap returns ErrDuplicateArgument for errors.Is compatibility.
func (e *DuplicateArgumentError) Unwrap() error { return ErrDuplicateArgument }

// Error implements the error interface.
func (e *InvalidDeclarationError) Error() string {
	return fmt.Sprintf("source %q declares invalid argument %q: %s", e.Source, e.Name, e.Reason)
}

// Unwrap returns ErrInvalidDeclaration for errors.Is compatibility.
func (e *InvalidDeclarationError) Unwrap() error { return ErrInvalidDeclaration }

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch len(e.Violations) {
	case 0:
		return ErrInvalidCommandLine.Error()
	case 1:
		return "Invalid command line: " + e.Violations[0].Message
	}
	var sb strings.Builder
	sb.WriteString("Invalid command line:")
	for _, v := range e.Violations {
		sb.WriteString("\n  ")
		sb.WriteString(v.Message)
	}
	return sb.String()
}

// Unwrap returns ErrInvalidCommandLine for errors.Is compatibility.
func (e *ArgumentError) Unwrap() error { return ErrInvalidCommandLine }

// UserFault marks the error as caused by user input.
func (e *ArgumentError) UserFault() bool { return true }

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("Argument '--%s' has value '%s' which cannot be converted to %s: %v", e.Argument, e.Value, e.Kind, e.Err)
}

// Unwrap returns both the sentinel and the underlying conversion failure.
func (e *ConversionError) Unwrap() []error { return []error{ErrConversion, e.Err} }

// UserFault marks the error as caused by user input.
func (e *ConversionError) UserFault() bool { return true }
