// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"bufio"
	"context"
	"errors"
	"io"
	"unicode"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/startup"
)

// Count prints the number of lines, words and bytes of a file.
type Count struct {
	Input     string
	LinesOnly bool
}

// Tally holds the totals computed by Count.
type Tally struct {
	Lines int64
	Words int64
	Bytes int64
}

// NewCount returns the count tool.
func NewCount() *Count { return &Count{} }

// ApplicationDetails implements appinfo.Provider.
func (c *Count) ApplicationDetails() appinfo.Details {
	d := appinfo.New("count", "Counts lines, words and bytes of a text file.")
	d.Description = "Reads `--input` once and prints **lines**, **words** and **bytes**. " +
		"Pass `-` to read standard input."
	d.AdditionalHelp = []string{"Example: stingkit count -I reads.txt --lines_only"}
	return d
}

// Arguments implements args.Source.
func (c *Count) Arguments() []*args.Declaration {
	return []*args.Declaration{
		args.String(&c.Input, args.Spec{FullName: "input", ShortName: "I", Doc: "File to count, or - for standard input", Required: true}),
		args.Bool(&c.LinesOnly, args.Spec{FullName: "lines_only", Doc: "Only print the line count"}),
	}
}

// Execute implements startup.Tool.
func (c *Count) Execute(ctx context.Context, env *startup.Environment) (int, error) {
	in, err := openInput(c.Input)
	if err != nil {
		return 1, err
	}
	defer func() { _ = in.Close() }()

	tally, err := CountReader(ctx, in)
	if err != nil {
		return 1, err
	}
	env.Logger.Log().Debug("counted input", "input", c.Input, "lines", tally.Lines, "bytes", tally.Bytes)

	if c.LinesOnly {
		env.Printer.Fprintf(env.Stdout, "%d\n", tally.Lines)
		return 0, nil
	}
	env.Printer.Fprintf(env.Stdout, "%d lines %d words %d bytes\n", tally.Lines, tally.Words, tally.Bytes)
	return 0, nil
}

// CountReader tallies r. A final line without a trailing newline counts as
// a line.
func CountReader(ctx context.Context, r io.Reader) (Tally, error) {
	var t Tally
	br := bufio.NewReader(r)
	inWord, endsWithNewline := false, true
	for {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		ch, size, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return t, err
		}
		t.Bytes += int64(size)
		if ch == '\n' {
			t.Lines++
		}
		if unicode.IsSpace(ch) {
			inWord = false
		} else if !inWord {
			inWord = true
			t.Words++
		}
		endsWithNewline = ch == '\n'
	}
	if !endsWithNewline {
		t.Lines++
	}
	return t, nil
}
