// SPDX-License-Identifier: MPL-2.0

package args

import (
	"slices"

	"golang.org/x/exp/maps"
)

type (
	// Unmatched is a token that matched no declaration at parse time.
	Unmatched struct {
		// Token is the raw token as it appeared on the command line.
		Token string
		// Value is the token consumed as the unmatched flag's value, if any.
		Value string
		// HasValue reports whether Value was consumed.
		HasValue bool
		// Positional is true for tokens that did not look like a flag.
		Positional bool
		// Position is the index of Token in the expanded argument vector.
		Position int
	}

	// Parsed is an immutable snapshot of one tokenization pass. A new snapshot
	// is produced every time the store parses; existing snapshots never change.
	Parsed struct {
		raw       []string
		values    map[string][]string
		valueless map[string]bool
		unmatched []Unmatched
	}
)

func newParsed(raw []string) *Parsed {
	return &Parsed{
		raw:       slices.Clone(raw),
		values:    make(map[string][]string),
		valueless: make(map[string]bool),
	}
}

// Raw returns the argument vector the snapshot was produced from, after
// argument-file expansion.
func (p *Parsed) Raw() []string { return slices.Clone(p.raw) }

// Present reports whether the named argument appeared on the command line,
// with or without a usable value.
func (p *Parsed) Present(fullName string) bool {
	if p == nil {
		return false
	}
	_, ok := p.values[fullName]
	return ok || p.valueless[fullName]
}

// Values returns the values supplied for fullName, in command-line order.
func (p *Parsed) Values(fullName string) []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.values[fullName])
}

// MissingValue reports whether fullName was supplied without the value it requires.
func (p *Parsed) MissingValue(fullName string) bool {
	return p != nil && p.valueless[fullName]
}

// Names returns the sorted full names that received at least one value.
func (p *Parsed) Names() []string {
	if p == nil {
		return nil
	}
	names := maps.Keys(p.values)
	slices.Sort(names)
	return names
}

// Unmatched returns the tokens that matched no declaration.
func (p *Parsed) Unmatched() []Unmatched {
	if p == nil {
		return nil
	}
	return slices.Clone(p.unmatched)
}
