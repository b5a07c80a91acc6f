// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"context"
	"io"
	"regexp"

	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/report"
	"github.com/stingkit/stingkit/internal/startup"
)

// Grep prints the input lines matching a regular expression.
type Grep struct {
	Pattern    string
	IgnoreCase bool
	MaxMatches int
}

// Match is a matching line and its 1-based number.
type Match struct {
	Line int
	Text string
}

// NewGrep returns the analysis with its defaults.
func NewGrep() *Grep { return &Grep{} }

// Summary implements Analysis.
func (g *Grep) Summary() string { return "lines matching a regular expression" }

// Arguments implements args.Source.
func (g *Grep) Arguments() []*args.Declaration {
	return []*args.Declaration{
		args.String(&g.Pattern, args.Spec{FullName: "pattern", ShortName: "e", Doc: "Regular expression to search for", Required: true}),
		args.Bool(&g.IgnoreCase, args.Spec{FullName: "ignore_case", ShortName: "i", Doc: "Match case-insensitively"}),
		args.Int(&g.MaxMatches, args.Spec{FullName: "max_matches", Doc: "Stop after this many matches; 0 means no limit"}),
	}
}

// Run implements Analysis.
func (g *Grep) Run(ctx context.Context, in io.Reader, env *startup.Environment) error {
	matches, err := g.Find(ctx, in)
	if err != nil {
		return err
	}
	for _, m := range matches {
		env.Printer.Fprintf(env.Stdout, "%d:%s\n", m.Line, m.Text)
	}
	env.Logger.Log().Info("grep finished", "matches", len(matches))
	return nil
}

// Find returns the matching lines of in.
func (g *Grep) Find(ctx context.Context, in io.Reader) ([]Match, error) {
	expr := g.Pattern
	if g.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, report.WrapUserError(err, "Argument '--pattern' is not a valid regular expression")
	}
	if g.MaxMatches < 0 {
		return nil, report.NewUserError("--max_matches cannot be negative, got %d", g.MaxMatches)
	}

	var matches []Match
	sc := newLineScanner(in)
	for n := 1; sc.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !re.MatchString(sc.Text()) {
			continue
		}
		matches = append(matches, Match{Line: n, Text: sc.Text()})
		if g.MaxMatches > 0 && len(matches) == g.MaxMatches {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, scanError(err)
	}
	return matches, nil
}
