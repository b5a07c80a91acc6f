// SPDX-License-Identifier: MPL-2.0

package help

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
)

func testSources() []args.SourceInfo {
	level := "INFO"
	var (
		quiet bool
		input string
		mode  = "fast"
		tags  []string
	)
	return []args.SourceInfo{
		{
			Name: "common",
			Declarations: []*args.Declaration{
				args.String(&level, args.Spec{FullName: "logging_level", ShortName: "l", Doc: "Minimum logging level"}),
				args.Bool(&quiet, args.Spec{FullName: "quiet_output_mode", ShortName: "quiet", Doc: "No console output"}),
			},
		},
		{
			Name: "count",
			Declarations: []*args.Declaration{
				args.Enum(&mode, []string{"fast", "slow"}, args.Spec{FullName: "mode", Doc: "Counting mode"}),
				args.String(&input, args.Spec{FullName: "input", ShortName: "I", Doc: "File to count", Required: true}),
				args.Strings(&tags, args.Spec{FullName: "tag", Doc: "Labels"}),
			},
		},
		{Name: "empty"},
	}
}

func TestRenderer_RenderHelp(t *testing.T) {
	t.Parallel()

	details := appinfo.New("count", "Counts lines, words and bytes.")
	details.Description = "Reads **one** file."
	details.AdditionalHelp = []string{"Exit status is 0 on success."}

	out := NewRenderer(&bytes.Buffer{}).RenderHelp(details, testSources())

	for _, want := range []string{
		"stingkit count, version",
		"Counts lines, words and bytes.",
		"Reads",
		"Usage: stingkit count [arguments]",
		"Arguments for common:",
		"-l,--logging_level <logging_level>",
		"Minimum logging level [default: INFO]",
		"-quiet,--quiet_output_mode",
		"Arguments for count:",
		"-I,--input <input>",
		"File to count (required)",
		"--mode <fast|slow>",
		"--tag <tag> ...",
		"Exit status is 0 on success.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderHelp() missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "Arguments for empty:") {
		t.Error("sources without declarations should be omitted")
	}
	if strings.Index(out, "--input") > strings.Index(out, "--mode") {
		t.Error("required arguments should be listed first")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output for a non-terminal writer should carry no escape codes")
	}
}

func TestHeaderLines(t *testing.T) {
	t.Parallel()

	details := appinfo.Details{Name: "count", Version: "1.0.0"}
	now := time.Date(2026, 10, 17, 9, 5, 3, 0, time.UTC)
	lines := HeaderLines(details, []string{"-I", "a.txt"}, now)

	want := []string{
		headerBar,
		"Program Name: stingkit count",
		"Program Args: -I a.txt",
		"Version: 1.0.0",
		"Date/Time: 2026/10/17 09:05:03",
		headerBar,
	}
	if len(lines) != len(want) {
		t.Fatalf("HeaderLines() = %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
