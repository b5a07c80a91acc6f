// SPDX-License-Identifier: MPL-2.0

package args

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// KindString is a single free-form string value.
	KindString Kind = iota
	// KindBool is a switch; supplying the flag without a value means true.
	KindBool
	// KindInt is a single integer value.
	KindInt
	// KindFloat is a single floating-point value.
	KindFloat
	// KindDuration is a single Go duration value (e.g. "1m30s").
	KindDuration
	// KindStrings collects every supplied value in order.
	KindStrings
	// KindEnum is a single value restricted to a fixed set of choices.
	KindEnum
)

type (
	// Kind is the value type a declaration converts its input to.
	Kind int

	// Spec is the user-visible surface of one argument.
	Spec struct {
		// FullName is matched by --full_name. Required and unique per store.
		FullName string
		// ShortName is matched by -short. Optional, unique per store when set.
		ShortName string
		// Doc is the one-line description shown in help output.
		Doc string
		// Required makes MissingRequiredArgument fire when the argument is absent.
		Required bool
		// ExclusiveOf lists full names that may not be supplied alongside this one.
		ExclusiveOf []string
	}

	// Declaration is one recognized argument bound to the field it populates.
	// Declarations are built with the typed binders and are immutable once
	// registered with a Store.
	Declaration struct {
		Spec

		kind        Kind
		choices     []string
		source      string
		defaultText string
		check       func(value string) error
		set         func(values []string) error
	}
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDuration:
		return "duration"
	case KindStrings:
		return "strings"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Kind returns the value kind of the declaration.
func (d *Declaration) Kind() Kind { return d.kind }

// Source returns the name of the source the declaration was registered
// under, or "" before registration.
func (d *Declaration) Source() string { return d.source }

// Choices returns the allowed values of an enum declaration.
func (d *Declaration) Choices() []string { return append([]string(nil), d.choices...) }

// DefaultText is the bound field's value at declaration time, formatted for help.
func (d *Declaration) DefaultText() string { return d.defaultText }

// Multi reports whether the declaration accepts repeated values.
func (d *Declaration) Multi() bool { return d.kind == KindStrings }

// TakesValue reports whether the declaration consumes a value token.
func (d *Declaration) TakesValue() bool { return d.kind != KindBool }

// Check reports whether value converts to the declaration's kind.
func (d *Declaration) Check(value string) error { return d.check(value) }

// String binds a string argument to target.
func String(target *string, spec Spec) *Declaration {
	return bind(target, spec, KindString, func(v string) (string, error) { return v, nil })
}

// Bool binds a switch argument to target.
func Bool(target *bool, spec Spec) *Declaration {
	return bind(target, spec, KindBool, cast.ToBoolE)
}

// Int binds an integer argument to target.
func Int(target *int, spec Spec) *Declaration {
	return bind(target, spec, KindInt, cast.ToIntE)
}

// Float binds a floating-point argument to target.
func Float(target *float64, spec Spec) *Declaration {
	return bind(target, spec, KindFloat, cast.ToFloat64E)
}

// Duration binds a duration argument to target.
func Duration(target *time.Duration, spec Spec) *Declaration {
	return bind(target, spec, KindDuration, func(v string) (time.Duration, error) {
		d, err := time.ParseDuration(v)
		if err != nil {
			// cast accepts bare integers as nanoseconds
			return cast.ToDurationE(v)
		}
		return d, nil
	})
}

// Strings binds a repeatable argument to target. Every occurrence on the
// command line contributes one value, in order.
func Strings(target *[]string, spec Spec) *Declaration {
	return &Declaration{
		Spec:        spec,
		kind:        KindStrings,
		defaultText: strings.Join(*target, ","),
		check:       func(string) error { return nil },
		set: func(values []string) error {
			*target = append([]string(nil), values...)
			return nil
		},
	}
}

// Enum binds a string argument restricted to choices. Values match
// case-insensitively and are stored in the canonical case of the choice.
func Enum(target *string, choices []string, spec Spec) *Declaration {
	d := bind(target, spec, KindEnum, func(v string) (string, error) {
		for _, c := range choices {
			if strings.EqualFold(c, v) {
				return c, nil
			}
		}
		return "", fmt.Errorf("must be one of %s", strings.Join(choices, ", "))
	})
	d.choices = append([]string(nil), choices...)
	return d
}

func bind[T any](target *T, spec Spec, kind Kind, conv func(string) (T, error)) *Declaration {
	return &Declaration{
		Spec:        spec,
		kind:        kind,
		defaultText: defaultText(*target),
		check: func(v string) error {
			_, err := conv(v)
			return err
		},
		set: func(values []string) error {
			val, err := conv(values[len(values)-1])
			if err != nil {
				return err
			}
			*target = val
			return nil
		},
	}
}

func defaultText(v any) string {
	switch tv := v.(type) {
	case bool:
		if !tv {
			return ""
		}
	case string:
		return tv
	}
	return cast.ToString(v)
}
