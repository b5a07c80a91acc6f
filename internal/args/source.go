// SPDX-License-Identifier: MPL-2.0

package args

import "strings"

type (
	// Source contributes a set of argument declarations. Arguments is called
	// exactly once, when the source is registered.
	Source interface {
		Arguments() []*Declaration
	}

	// SourceFunc adapts a plain function to Source.
	SourceFunc func() []*Declaration

	// SourceInfo describes a registered source for help rendering.
	SourceInfo struct {
		Name         string
		Declarations []*Declaration
	}
)

// Arguments calls f.
func (f SourceFunc) Arguments() []*Declaration { return f() }

func checkDeclaration(source string, d *Declaration) error {
	if d == nil {
		return &InvalidDeclarationError{Source: source, Reason: "declaration is nil"}
	}
	if d.FullName == "" {
		return &InvalidDeclarationError{Source: source, Name: d.ShortName, Reason: "full name is empty"}
	}
	for _, name := range []string{d.FullName, d.ShortName} {
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "-") || strings.ContainsAny(name, "= \t\n") {
			return &InvalidDeclarationError{Source: source, Name: name, Reason: "names may not start with '-' or contain '=' or whitespace"}
		}
	}
	return nil
}
