// SPDX-License-Identifier: MPL-2.0

package args

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

type (
	// Defaults supplies a fallback value for an argument absent from the
	// command line. A nil Defaults supplies nothing.
	Defaults func(fullName string) (value string, ok bool)

	// Parser is the grammar service behind a Store. The store only sequences
	// these calls; everything about flag syntax lives behind this interface.
	Parser interface {
		// Tokenize matches raw against decls. Tokens matching no declaration
		// are kept as Unmatched.
		Tokenize(raw []string, decls []*Declaration) (*Parsed, error)
		// Validate checks parsed against decls for the given rules only.
		Validate(parsed *Parsed, decls []*Declaration, rules RuleSet, defaults Defaults) Outcome
		// Populate writes parsed (or defaulted) values through each
		// declaration, continuing past failures and returning all of them.
		Populate(parsed *Parsed, decls []*Declaration, defaults Defaults) []*ConversionError
	}

	pflagParser struct{}
)

// NewParser returns the default Parser. Flags are written as --full_name or
// -short_name, with the value either attached by '=' or in the next token.
// Switches never consume the next token, and neither flag kind consumes a
// token naming another declared flag. A bare "--" ends flag parsing.
func NewParser() Parser {
	return pflagParser{}
}

func (d Defaults) lookup(fullName string) (string, bool) {
	if d == nil {
		return "", false
	}
	return d(fullName)
}

// Tokenize resolves every short or long spelling to its declaration and hands
// the normalized --full_name=value tokens to a pflag set that accumulates the
// values. Unknown flags and stray positionals never reach pflag.
func (pflagParser) Tokenize(raw []string, decls []*Declaration) (*Parsed, error) {
	fs := pflag.NewFlagSet("arguments", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	byFull := make(map[string]*Declaration, len(decls))
	byShort := make(map[string]*Declaration, len(decls))
	holders := make(map[string]*[]string, len(decls))
	for _, d := range decls {
		byFull[d.FullName] = d
		if d.ShortName != "" {
			byShort[d.ShortName] = d
		}
		h := new([]string)
		holders[d.FullName] = h
		fs.StringArrayVar(h, d.FullName, nil, d.Doc)
		if !d.TakesValue() {
			fs.Lookup(d.FullName).NoOptDefVal = "true"
		}
	}

	lookup := func(name string, long bool) *Declaration {
		first, second := byShort, byFull
		if long {
			first, second = byFull, byShort
		}
		if d, ok := first[name]; ok {
			return d
		}
		return second[name]
	}

	// A declared flag is never taken as the previous flag's value, so
	// "--logging_level --help" still asks for help.
	declared := func(tok string) bool {
		name, _, _, long, ok := splitFlag(tok)
		return ok && lookup(name, long) != nil
	}

	parsed := newParsed(raw)
	normalized := make([]string, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		if tok == "--" {
			for j := i + 1; j < len(raw); j++ {
				parsed.unmatched = append(parsed.unmatched, Unmatched{Token: raw[j], Positional: true, Position: j})
			}
			break
		}

		name, value, hasValue, long, ok := splitFlag(tok)
		if !ok {
			parsed.unmatched = append(parsed.unmatched, Unmatched{Token: tok, Positional: true, Position: i})
			continue
		}

		d := lookup(name, long)
		if d == nil {
			u := Unmatched{Token: tok, Position: i}
			if hasValue {
				u.Value, u.HasValue = value, true
			} else if i+1 < len(raw) && !looksLikeFlag(raw[i+1]) {
				u.Value, u.HasValue = raw[i+1], true
				i++
			}
			parsed.unmatched = append(parsed.unmatched, u)
			continue
		}

		switch {
		case hasValue:
			normalized = append(normalized, "--"+d.FullName+"="+value)
		case !d.TakesValue():
			normalized = append(normalized, "--"+d.FullName)
		case i+1 < len(raw) && !declared(raw[i+1]):
			normalized = append(normalized, "--"+d.FullName+"="+raw[i+1])
			i++
		default:
			parsed.valueless[d.FullName] = true
		}
	}

	if err := fs.Parse(normalized); err != nil {
		return nil, NewArgumentError("Invalid command line: %v", err)
	}
	for name, h := range holders {
		if fs.Changed(name) {
			parsed.values[name] = append([]string(nil), (*h)...)
		}
	}
	return parsed, nil
}

func (pflagParser) Validate(parsed *Parsed, decls []*Declaration, rules RuleSet, defaults Defaults) Outcome {
	return validate(parsed, decls, rules, defaults)
}

func (pflagParser) Populate(parsed *Parsed, decls []*Declaration, defaults Defaults) []*ConversionError {
	var failures []*ConversionError
	for _, d := range decls {
		values := parsed.Values(d.FullName)
		if len(values) == 0 {
			v, ok := defaults.lookup(d.FullName)
			if !ok {
				continue
			}
			values = []string{v}
			if d.Multi() {
				values = strings.Split(v, ",")
			}
		}
		if err := d.set(values); err != nil {
			failures = append(failures, &ConversionError{
				Argument: d.FullName,
				Value:    values[len(values)-1],
				Kind:     d.kind,
				Err:      err,
			})
		}
	}
	return failures
}

// splitFlag reports the name and inline value of a flag token. Numbers such
// as "-5" and the lone "-" are positionals.
func splitFlag(tok string) (name, value string, hasValue, long, ok bool) {
	if !looksLikeFlag(tok) {
		return "", "", false, false, false
	}
	body := strings.TrimPrefix(tok, "-")
	if strings.HasPrefix(body, "-") {
		body = body[1:]
		long = true
	}
	if body == "" {
		return "", "", false, false, false
	}
	name, value, hasValue = strings.Cut(body, "=")
	return name, value, hasValue, long, true
}

func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	_, err := strconv.ParseFloat(tok, 64)
	return err != nil
}
