// SPDX-License-Identifier: MPL-2.0

package args

import (
	"fmt"
	"strings"
)

const (
	// RuleMissingRequired fires for a required argument absent from both the
	// command line and the configured defaults.
	RuleMissingRequired RuleSet = 1 << iota
	// RuleInvalidArgument fires for unmatched flags and stray positionals.
	RuleInvalidArgument
	// RuleInvalidValue fires for a value that does not convert to its kind.
	RuleInvalidValue
	// RuleValueMissing fires for a non-switch flag given without a value.
	RuleValueMissing
	// RuleTooManyValues fires for a single-valued argument supplied twice.
	RuleTooManyValues
	// RuleMutuallyExclusive fires for two exclusive arguments supplied together.
	RuleMutuallyExclusive

	// AllRules is the strict rule set.
	AllRules = RuleMissingRequired | RuleInvalidArgument | RuleInvalidValue |
		RuleValueMissing | RuleTooManyValues | RuleMutuallyExclusive
)

var ruleNames = []struct {
	rule RuleSet
	name string
}{
	{RuleMissingRequired, "MissingRequiredArgument"},
	{RuleInvalidArgument, "InvalidArgument"},
	{RuleInvalidValue, "InvalidArgumentValue"},
	{RuleValueMissing, "ValueMissingArgument"},
	{RuleTooManyValues, "TooManyValuesForArgument"},
	{RuleMutuallyExclusive, "MutuallyExclusive"},
}

type (
	// RuleSet is a bit set of validation rules.
	RuleSet uint

	// Violation is one broken rule. Argument is the offending full name, or
	// the raw token for unmatched input.
	Violation struct {
		Rule     RuleSet
		Argument string
		Message  string
	}

	// Outcome is the result of one validation pass.
	Outcome struct {
		Rules      RuleSet
		Violations []Violation
	}
)

// Has reports whether every rule in r is in s.
func (s RuleSet) Has(r RuleSet) bool { return s&r == r }

// Without returns s minus the given rules.
func (s RuleSet) Without(rules ...RuleSet) RuleSet {
	for _, r := range rules {
		s &^= r
	}
	return s
}

// String lists the rule names in s, joined by '|'.
func (s RuleSet) String() string {
	var names []string
	for _, rn := range ruleNames {
		if s.Has(rn.rule) {
			names = append(names, rn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// OK reports whether the pass found no violations.
func (o Outcome) OK() bool { return len(o.Violations) == 0 }

// Err returns the violations as an *ArgumentError, or nil when OK.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return &ArgumentError{Violations: append([]Violation(nil), o.Violations...)}
}

func validate(parsed *Parsed, decls []*Declaration, rules RuleSet, defaults Defaults) Outcome {
	out := Outcome{Rules: rules}
	add := func(rule RuleSet, arg, format string, a ...any) {
		out.Violations = append(out.Violations, Violation{Rule: rule, Argument: arg, Message: fmt.Sprintf(format, a...)})
	}

	if rules.Has(RuleMissingRequired) {
		for _, d := range decls {
			if !d.Required || parsed.Present(d.FullName) {
				continue
			}
			if _, ok := defaults.lookup(d.FullName); ok {
				continue
			}
			add(RuleMissingRequired, d.FullName, "Argument with name '--%s' %sis missing.", d.FullName, shortHint(d))
		}
	}

	if rules.Has(RuleInvalidArgument) {
		for _, u := range parsed.Unmatched() {
			if u.Positional {
				add(RuleInvalidArgument, u.Token, "Invalid argument value '%s' at position %d.", u.Token, u.Position)
				continue
			}
			add(RuleInvalidArgument, u.Token, "Argument with name '%s' isn't defined.", u.Token)
		}
	}

	if rules.Has(RuleValueMissing) {
		for _, d := range decls {
			if parsed.MissingValue(d.FullName) {
				add(RuleValueMissing, d.FullName, "Argument '--%s' requires a value.", d.FullName)
			}
		}
	}

	if rules.Has(RuleInvalidValue) {
		for _, d := range decls {
			for _, v := range parsed.Values(d.FullName) {
				if err := d.check(v); err != nil {
					add(RuleInvalidValue, d.FullName, "Argument '--%s' has invalid value '%s': %v", d.FullName, v, err)
				}
			}
		}
	}

	if rules.Has(RuleTooManyValues) {
		for _, d := range decls {
			if values := parsed.Values(d.FullName); !d.Multi() && len(values) > 1 {
				add(RuleTooManyValues, d.FullName, "Argument '--%s' has too many values: %s.", d.FullName, strings.Join(values, ", "))
			}
		}
	}

	if rules.Has(RuleMutuallyExclusive) {
		reported := make(map[[2]string]bool)
		for _, d := range decls {
			if !parsed.Present(d.FullName) {
				continue
			}
			for _, other := range d.ExclusiveOf {
				if !parsed.Present(other) {
					continue
				}
				pair := [2]string{min(d.FullName, other), max(d.FullName, other)}
				if reported[pair] {
					continue
				}
				reported[pair] = true
				add(RuleMutuallyExclusive, d.FullName, "Arguments '--%s' and '--%s' are mutually exclusive.", pair[0], pair[1])
			}
		}
	}

	return out
}

func shortHint(d *Declaration) string {
	if d.ShortName == "" {
		return ""
	}
	return "(-" + d.ShortName + ") "
}
