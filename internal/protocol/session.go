// SPDX-License-Identifier: MPL-2.0

package protocol

import (
	"slices"

	"github.com/stingkit/stingkit/internal/args"
)

// Session ties one invocation's store, raw arguments, parse snapshots and
// state together. It lives for exactly one resolution, including any
// dynamic expansion, and is discarded after dispatch.
type Session struct {
	store     *args.Store
	raw       []string
	state     State
	trace     []State
	snapshots []*args.Parsed
}

// NewSession creates a session in StateInit.
func NewSession(store *args.Store, raw []string) *Session {
	return &Session{
		store: store,
		raw:   slices.Clone(raw),
		state: StateInit,
		trace: []State{StateInit},
	}
}

// Store returns the session's argument store.
func (s *Session) Store() *args.Store { return s.store }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Trace returns every state the session has been in, in order.
func (s *Session) Trace() []State { return slices.Clone(s.trace) }

// Snapshots returns every parse snapshot taken, oldest first.
func (s *Session) Snapshots() []*args.Parsed { return slices.Clone(s.snapshots) }

// MarkDispatched moves a loaded session to StateDispatched.
func (s *Session) MarkDispatched() error {
	return s.transition(StateDispatched)
}

func (s *Session) transition(to State) error {
	if !s.state.CanTransition(to) {
		return &TransitionError{From: s.state, To: to}
	}
	s.state = to
	s.trace = append(s.trace, to)
	return nil
}

// parse records a snapshot whenever the store produced one, even alongside
// an error, so help stays detectable after a bad argument file.
func (s *Session) parse() error {
	parsed, err := s.store.Parse(s.raw)
	if parsed == nil {
		return err
	}
	s.snapshots = append(s.snapshots, parsed)
	if terr := s.transition(StateParsed); terr != nil {
		return terr
	}
	return err
}
