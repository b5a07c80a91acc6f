// SPDX-License-Identifier: MPL-2.0

package protocol

import (
	"errors"
	"fmt"
)

const (
	// StateInit is a new session before the first parse.
	StateInit State = iota
	// StateParsed means the latest snapshot matches the current declarations.
	StateParsed
	// StatePartiallyValidated means the lenient rule set ran on the first pass.
	StatePartiallyValidated
	// StateFullyValidated means the strict rule set passed.
	StateFullyValidated
	// StateLoaded means values were written into the bound fields.
	StateLoaded
	// StateDynamicExpansion means the program is contributing extra sources.
	StateDynamicExpansion
	// StateDispatched is terminal: the tool's entry point was called.
	StateDispatched
	// StateHelp is terminal: help was requested.
	StateHelp
	// StateFaulted is terminal: resolution failed.
	StateFaulted
)

var (
	// ErrInvalidState is returned when a State value is not one of the defined states.
	ErrInvalidState = errors.New("invalid state")
	// ErrIllegalTransition is the sentinel wrapped by TransitionError.
	ErrIllegalTransition = errors.New("illegal state transition")
)

var transitions = map[State][]State{
	StateInit:               {StateParsed},
	StateParsed:             {StatePartiallyValidated, StateFullyValidated, StateHelp},
	StatePartiallyValidated: {StateLoaded},
	StateFullyValidated:     {StateLoaded},
	StateLoaded:             {StateDynamicExpansion, StateDispatched},
	StateDynamicExpansion:   {StateParsed, StateHelp},
}

type (
	// State is a step of the resolution state machine.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	InvalidStateError struct {
		Value State
	}

	// TransitionError is returned for a transition the state machine does not allow.
	TransitionError struct {
		From State
		To   State
	}
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateParsed:
		return "parsed"
	case StatePartiallyValidated:
		return "partially-validated"
	case StateFullyValidated:
		return "fully-validated"
	case StateLoaded:
		return "loaded"
	case StateDynamicExpansion:
		return "dynamic-expansion"
	case StateDispatched:
		return "dispatched"
	case StateHelp:
		return "help"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Validate returns nil if the State is one of the defined states.
func (s State) Validate() error {
	if s < StateInit || s > StateFaulted {
		return &InvalidStateError{Value: s}
	}
	return nil
}

// IsTerminal returns true for Dispatched, Help and Faulted.
func (s State) IsTerminal() bool {
	return s == StateDispatched || s == StateHelp || s == StateFaulted
}

// CanTransition reports whether the state machine allows s → to. Every
// non-terminal state may fault.
func (s State) CanTransition(to State) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StateFaulted {
		return true
	}
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// Error implements the error interface for TransitionError.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal state transition %s -> %s", e.From, e.To)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
