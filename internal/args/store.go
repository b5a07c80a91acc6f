// SPDX-License-Identifier: MPL-2.0

package args

import (
	"fmt"
	"slices"
)

type (
	// Store holds the registered sources of one resolution session and the
	// most recent parse of the command line against them. A Store is not
	// safe for concurrent use.
	Store struct {
		parser   Parser
		defaults Defaults

		sources []*registered
		byName  map[string]*registered
		full    map[string]string
		short   map[string]string

		parsed *Parsed
	}

	// Option configures a Store.
	Option func(*Store)

	registered struct {
		name  string
		decls []*Declaration
	}
)

// WithParser replaces the default pflag-backed Parser.
func WithParser(p Parser) Option {
	return func(s *Store) { s.parser = p }
}

// WithDefaults installs fallback values for arguments absent from the
// command line.
func WithDefaults(d Defaults) Option {
	return func(s *Store) { s.defaults = d }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		parser: NewParser(),
		byName: make(map[string]*registered),
		full:   make(map[string]string),
		short:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterSource adds src under name. Registration is all-or-nothing: a
// duplicate source name, a name collision with an already registered
// argument, or a malformed declaration leaves the store unchanged.
func (s *Store) RegisterSource(name string, src Source) error {
	if _, exists := s.byName[name]; exists {
		return &DuplicateSourceError{Name: name}
	}

	decls := src.Arguments()
	full := make(map[string]bool, len(decls))
	short := make(map[string]bool, len(decls))
	for _, d := range decls {
		if err := checkDeclaration(name, d); err != nil {
			return err
		}
		if owner, ok := s.full[d.FullName]; ok || full[d.FullName] {
			return &DuplicateArgumentError{Name: d.FullName, Source: name, Existing: ownerOr(owner, name)}
		}
		full[d.FullName] = true
		if d.ShortName == "" {
			continue
		}
		if owner, ok := s.short[d.ShortName]; ok || short[d.ShortName] {
			return &DuplicateArgumentError{Name: d.ShortName, Short: true, Source: name, Existing: ownerOr(owner, name)}
		}
		short[d.ShortName] = true
	}

	reg := &registered{name: name, decls: slices.Clone(decls)}
	for _, d := range reg.decls {
		d.source = name
		s.full[d.FullName] = name
		if d.ShortName != "" {
			s.short[d.ShortName] = name
		}
	}
	s.sources = append(s.sources, reg)
	s.byName[name] = reg
	return nil
}

func ownerOr(owner, fallback string) string {
	if owner == "" {
		return fallback
	}
	return owner
}

// HasSource reports whether name is registered.
func (s *Store) HasSource(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Sources returns the registered sources in registration order.
func (s *Store) Sources() []SourceInfo {
	out := make([]SourceInfo, 0, len(s.sources))
	for _, r := range s.sources {
		out = append(out, SourceInfo{Name: r.name, Declarations: slices.Clone(r.decls)})
	}
	return out
}

// Declarations returns every registered declaration in registration order.
func (s *Store) Declarations() []*Declaration {
	var out []*Declaration
	for _, r := range s.sources {
		out = append(out, r.decls...)
	}
	return out
}

// Parse expands argument files in raw and tokenizes the result against the
// current declarations. The new snapshot replaces the previous one.
//
// When an argument file cannot be read, raw is still tokenized as given and
// that snapshot is returned with the error, so callers can tell whether help
// was asked for.
func (s *Store) Parse(raw []string) (*Parsed, error) {
	expanded, expandErr := ExpandArgFiles(raw)
	if expandErr != nil {
		expanded = raw
	}
	parsed, err := s.parser.Tokenize(expanded, s.Declarations())
	if err != nil {
		return nil, err
	}
	s.parsed = parsed
	return parsed, expandErr
}

// Parsed returns the most recent snapshot, or nil before the first Parse.
func (s *Store) Parsed() *Parsed { return s.parsed }

// IsPresent reports whether fullName appeared in the most recent parse,
// whatever the validity of the rest of the command line.
func (s *Store) IsPresent(fullName string) bool {
	return s.parsed.Present(fullName)
}

// Validate checks the most recent parse against rules.
func (s *Store) Validate(rules RuleSet) Outcome {
	parsed := s.parsed
	if parsed == nil {
		parsed = newParsed(nil)
	}
	return s.parser.Validate(parsed, s.Declarations(), rules, s.defaults)
}

// LoadInto populates the fields bound by the source registered under name.
// The first value that fails to convert is returned as a *ConversionError.
func (s *Store) LoadInto(name string) error {
	failures, err := s.load(name)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return failures[0]
	}
	return nil
}

// LoadLenient populates what it can of the source registered under name and
// returns the values it skipped instead of failing on them.
func (s *Store) LoadLenient(name string) ([]*ConversionError, error) {
	return s.load(name)
}

// LoadAll loads every registered source in registration order.
func (s *Store) LoadAll() error {
	for _, r := range s.sources {
		if err := s.LoadInto(r.name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) load(name string) ([]*ConversionError, error) {
	r, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	parsed := s.parsed
	if parsed == nil {
		parsed = newParsed(nil)
	}
	return s.parser.Populate(parsed, r.decls, s.defaults), nil
}
