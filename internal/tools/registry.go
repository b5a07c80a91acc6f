// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/startup"
)

// ErrDuplicateAnalysis is the sentinel wrapped by DuplicateAnalysisError.
var ErrDuplicateAnalysis = errors.New("analysis already registered")

type (
	// Analysis is one analysis Analyze can run. Its arguments are only
	// parsed once the analysis has been selected.
	Analysis interface {
		args.Source
		Summary() string
		Run(ctx context.Context, in io.Reader, env *startup.Environment) error
	}

	// Factory creates a fresh Analysis for one run.
	Factory func() Analysis

	// Registry maps analysis names to factories.
	Registry struct {
		factories map[string]Factory
	}

	// DuplicateAnalysisError is returned when a name is registered twice.
	DuplicateAnalysisError struct {
		Name string
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry returns a registry holding the built-in analyses.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("wordfreq", func() Analysis { return NewWordFreq() })
	_ = r.Register("grep", func() Analysis { return NewGrep() })
	return r
}

// Register adds factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if _, exists := r.factories[name]; exists {
		return &DuplicateAnalysisError{Name: name}
	}
	r.factories[name] = factory
	return nil
}

// Lookup creates the analysis registered under name.
func (r *Registry) Lookup(name string) (Analysis, bool) {
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := maps.Keys(r.factories)
	slices.Sort(names)
	return names
}

// Error implements the error interface.
func (e *DuplicateAnalysisError) Error() string {
	return fmt.Sprintf("analysis %q is already registered", e.Name)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *DuplicateAnalysisError) Unwrap() error { return ErrDuplicateAnalysis }
