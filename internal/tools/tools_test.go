// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stingkit/stingkit/internal/report"
	"github.com/stingkit/stingkit/internal/startup"
	"github.com/stingkit/stingkit/internal/testutil"
	"github.com/stingkit/stingkit/pkg/types"
)

const poem = `The quick brown fox
jumps over the lazy dog.
The dog sleeps; the fox runs.
`

func run(t *testing.T, tool startup.Tool, raw ...string) (types.ExitCode, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := startup.NewEnvironment(&stdout, &stderr)
	code := startup.Run(context.Background(), env, tool, raw)
	return code, stdout.String(), stderr.String()
}

func writePoem(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "poem.txt", poem)
}

func TestCountReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Tally
	}{
		{"empty", "", Tally{}},
		{"single line with newline", "a b\n", Tally{Lines: 1, Words: 2, Bytes: 4}},
		{"no trailing newline", "a\nb", Tally{Lines: 2, Words: 2, Bytes: 3}},
		{"blank lines", "\n\n", Tally{Lines: 2, Words: 0, Bytes: 2}},
		{"multibyte", "héllo wörld\n", Tally{Lines: 1, Words: 2, Bytes: 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CountReader(context.Background(), strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("CountReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CountReader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCountTool(t *testing.T) {
	t.Parallel()

	path := writePoem(t)
	tests := []struct {
		name string
		raw  []string
		want string
	}{
		{"all totals", []string{"--input", path}, "3 lines 15 words 75 bytes\n"},
		{"lines only", []string{"-I", path, "--lines_only"}, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := run(t, NewCount(), tt.raw...)
			if code != types.ExitSuccess {
				t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestCountGroupsLargeNumbers(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, t.TempDir(), "big.txt", strings.Repeat("x\n", 1234))
	code, stdout, stderr := run(t, NewCount(), "-I", path, "--lines_only")
	if code != types.ExitSuccess {
		t.Fatalf("exit = %d, stderr:\n%s", code, stderr)
	}
	if stdout != "1,234\n" {
		t.Errorf("stdout = %q, want locale grouping", stdout)
	}
}

func TestCountMissingFileIsUserFault(t *testing.T) {
	t.Parallel()

	code, _, stderr := run(t, NewCount(), "-I", "/does/not/exist.txt")
	if code != types.ExitFailure {
		t.Fatalf("exit = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(stderr, "USER ERROR") || !strings.Contains(stderr, "/does/not/exist.txt") {
		t.Errorf("stderr should be a user fault naming the file:\n%s", stderr)
	}
}

func TestWordFreqCount(t *testing.T) {
	t.Parallel()

	w := &WordFreq{Top: 3, MinLength: 3}
	got, err := w.Count(context.Background(), strings.NewReader(poem))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	want := []WordCount{{"the", 4}, {"dog", 2}, {"fox", 2}}
	if len(got) != len(want) {
		t.Fatalf("Count() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Count()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGrepFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		grep    Grep
		want    []int
		wantErr bool
	}{
		{"case sensitive", Grep{Pattern: "The"}, []int{1, 3}, false},
		{"ignore case", Grep{Pattern: "the", IgnoreCase: true}, []int{1, 2, 3}, false},
		{"max matches", Grep{Pattern: "o", MaxMatches: 2}, []int{1, 2}, false},
		{"no match", Grep{Pattern: "cat"}, nil, false},
		{"bad pattern", Grep{Pattern: "("}, nil, true},
		{"negative max", Grep{Pattern: "o", MaxMatches: -1}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.grep.Find(context.Background(), strings.NewReader(poem))
			if tt.wantErr {
				if report.Classify(err) != report.KindUser {
					t.Errorf("Find() error = %v, want a user fault", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			var lines []int
			for _, m := range got {
				lines = append(lines, m.Line)
			}
			if len(lines) != len(tt.want) {
				t.Fatalf("lines = %v, want %v", lines, tt.want)
			}
			for i := range lines {
				if lines[i] != tt.want[i] {
					t.Errorf("lines = %v, want %v", lines, tt.want)
				}
			}
		})
	}
}

// endless yields an unbroken run of one byte.
type endless byte

func (e endless) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(e)
	}
	return len(p), nil
}

func TestLongLines(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", 200<<10) + " zebra\nend\n"

	matches, err := (&Grep{Pattern: "^end$"}).Find(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(matches) != 1 || matches[0].Line != 2 {
		t.Errorf("Find() = %v, want the match on line 2", matches)
	}

	words, err := (&WordFreq{Top: 5, MinLength: 4}).Count(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if len(words) != 2 {
		t.Errorf("Count() = %v, want the long word and zebra", words)
	}
}

func TestLineOverLimitIsUserFault(t *testing.T) {
	t.Parallel()

	in := io.LimitReader(endless('x'), MaxLineSize+1)
	_, err := (&Grep{Pattern: "x"}).Find(context.Background(), in)
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("Find() error = %v, want bufio.ErrTooLong", err)
	}
	if report.Classify(err) != report.KindUser {
		t.Errorf("Classify() = %s, want a user fault", report.Classify(err))
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	if names := r.Names(); len(names) != 2 || names[0] != "grep" || names[1] != "wordfreq" {
		t.Errorf("Names() = %v", names)
	}

	err := r.Register("grep", func() Analysis { return NewGrep() })
	if !errors.Is(err, ErrDuplicateAnalysis) {
		t.Errorf("Register() duplicate error = %v", err)
	}

	a, ok := r.Lookup("wordfreq")
	b, _ := r.Lookup("wordfreq")
	if !ok || a == b {
		t.Error("Lookup() should create a fresh analysis each time")
	}
	if _, ok := r.Lookup("sentiment"); ok {
		t.Error("Lookup() found an unregistered analysis")
	}
}

func TestAnalyzeTool(t *testing.T) {
	t.Parallel()

	path := writePoem(t)
	tests := []struct {
		name     string
		raw      []string
		wantCode types.ExitCode
		stdout   string
		stderr   string
	}{
		{
			name:     "wordfreq",
			raw:      []string{"-T", "wordfreq", "-I", path, "--top", "1"},
			wantCode: types.ExitSuccess,
			stdout:   "the",
		},
		{
			name:     "analysis arguments before selector",
			raw:      []string{"--pattern", "lazy", "-I", path, "--analysis_type", "grep"},
			wantCode: types.ExitSuccess,
			stdout:   "2:jumps over the lazy dog.",
		},
		{
			name:     "missing analysis argument",
			raw:      []string{"-T", "grep", "-I", path},
			wantCode: types.ExitFailure,
			stderr:   "--pattern",
		},
		{
			name:     "unknown analysis",
			raw:      []string{"-T", "sentiment", "-I", path},
			wantCode: types.ExitFailure,
			stderr:   "Analysis 'sentiment' is not one of: grep, wordfreq",
		},
		{
			name:     "argument of another analysis",
			raw:      []string{"-T", "wordfreq", "-I", path, "--pattern", "x"},
			wantCode: types.ExitFailure,
			stderr:   "Argument with name '--pattern' isn't defined.",
		},
		{
			name:     "help lists selected analysis",
			raw:      []string{"-T", "grep", "--help"},
			wantCode: types.ExitSuccess,
			stdout:   "--max_matches",
		},
		{
			name:     "help without selector",
			raw:      []string{"--help"},
			wantCode: types.ExitSuccess,
			stdout:   "--analysis_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := run(t, NewAnalyze(DefaultRegistry()), tt.raw...)
			if code != tt.wantCode {
				t.Fatalf("exit = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout, stderr)
			}
			if !strings.Contains(stdout, tt.stdout) {
				t.Errorf("stdout missing %q:\n%s", tt.stdout, stdout)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr missing %q:\n%s", tt.stderr, stderr)
			}
		})
	}
}

