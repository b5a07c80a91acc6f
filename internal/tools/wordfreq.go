// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"cmp"
	"context"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/report"
	"github.com/stingkit/stingkit/internal/startup"
)

// WordFreq prints the most frequent words of the input.
type WordFreq struct {
	Top       int
	MinLength int
}

// WordCount is one row of a word frequency table.
type WordCount struct {
	Word  string
	Count int
}

// NewWordFreq returns the analysis with its defaults.
func NewWordFreq() *WordFreq { return &WordFreq{Top: 10, MinLength: 1} }

// Summary implements Analysis.
func (w *WordFreq) Summary() string { return "most frequent words" }

// Arguments implements args.Source.
func (w *WordFreq) Arguments() []*args.Declaration {
	return []*args.Declaration{
		args.Int(&w.Top, args.Spec{FullName: "top", Doc: "Number of words to print"}),
		args.Int(&w.MinLength, args.Spec{FullName: "min_length", Doc: "Ignore words shorter than this"}),
	}
}

// Run implements Analysis.
func (w *WordFreq) Run(ctx context.Context, in io.Reader, env *startup.Environment) error {
	if w.Top < 1 {
		return report.NewUserError("--top must be at least 1, got %d", w.Top)
	}
	counts, err := w.Count(ctx, in)
	if err != nil {
		return err
	}
	for _, wc := range counts {
		env.Printer.Fprintf(env.Stdout, "%-24s %d\n", wc.Word, wc.Count)
	}
	return nil
}

// Count returns the Top most frequent words of in, most frequent first and
// alphabetically among equals. Words are lower-cased runs of letters and
// digits.
func (w *WordFreq) Count(ctx context.Context, in io.Reader) ([]WordCount, error) {
	seen := map[string]int{}
	sc := newLineScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words := strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, word := range words {
			if len([]rune(word)) < w.MinLength {
				continue
			}
			seen[strings.ToLower(word)]++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, scanError(err)
	}

	out := make([]WordCount, 0, len(seen))
	for word, n := range seen {
		out = append(out, WordCount{Word: word, Count: n})
	}
	slices.SortFunc(out, func(a, b WordCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if len(out) > w.Top {
		out = out[:w.Top]
	}
	return out, nil
}
