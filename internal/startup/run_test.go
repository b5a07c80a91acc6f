// SPDX-License-Identifier: MPL-2.0

package startup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/logging"
	"github.com/stingkit/stingkit/internal/protocol"
	"github.com/stingkit/stingkit/internal/report"
	"github.com/stingkit/stingkit/internal/testutil"
	"github.com/stingkit/stingkit/pkg/types"
)

type fakeTool struct {
	decls     func() []*args.Declaration
	code      int
	err       error
	panicWith any
	executed  bool
	sawLevel  logging.Level
}

func (f *fakeTool) ApplicationDetails() appinfo.Details {
	d := appinfo.New("demo", "A demonstration tool.")
	d.Version = "9.9.9"
	return d
}

func (f *fakeTool) Arguments() []*args.Declaration {
	if f.decls == nil {
		return nil
	}
	return f.decls()
}

func (f *fakeTool) Execute(_ context.Context, env *Environment) (int, error) {
	f.executed = true
	f.sawLevel = env.Logger.Level()
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.code, f.err
}

type harness struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	common *Common
}

func newHarness() *harness {
	var stdout, stderr bytes.Buffer
	env := NewEnvironment(&stdout, &stderr)
	env.Clock = testutil.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return &harness{env: env, stdout: &stdout, stderr: &stderr, common: NewCommon()}
}

func (h *harness) run(tool Tool, raw ...string) types.ExitCode {
	return Run(context.Background(), h.env, tool, raw, WithCommon(h.common))
}

func TestRunLoggingLevelDebug(t *testing.T) {
	t.Parallel()

	h := newHarness()
	tool := &fakeTool{}
	code := h.run(tool, "--logging_level", "DEBUG")

	if code != types.ExitSuccess {
		t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
	}
	if !tool.executed {
		t.Fatal("tool was not dispatched")
	}
	if tool.sawLevel != logging.LevelDebug {
		t.Errorf("level at dispatch = %s, want DEBUG", tool.sawLevel)
	}
	if h.env.Logger.Pattern().Name != logging.VerbosePattern.Name {
		t.Errorf("pattern = %s, want %s", h.env.Logger.Pattern().Name, logging.VerbosePattern.Name)
	}
	if h.common.LogToFile != "" || h.env.Logger.FilePath() != "" {
		t.Error("no file sink should be attached")
	}
	if !strings.Contains(h.stderr.String(), "Program Name: stingkit demo") {
		t.Errorf("header lines were not logged:\n%s", h.stderr)
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []string
	}{
		{"help alone", []string{"--help"}},
		{"help after logging level", []string{"--logging_level", "--help"}},
		{"short help after input", []string{"--input", "-h"}},
		{"help with unreadable argument file", []string{"@/nonexistent/stingkit/args.txt", "--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness()
			tool := &fakeTool{decls: func() []*args.Declaration {
				var in string
				return []*args.Declaration{args.String(&in, args.Spec{FullName: "input", Required: true})}
			}}
			code := h.run(tool, tt.raw...)

			if code != types.ExitSuccess {
				t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
			}
			if tool.executed {
				t.Error("tool must not run when help is requested")
			}
			out := h.stdout.String()
			for _, want := range []string{"Usage:", "--input", "--logging_level"} {
				if !strings.Contains(out, want) {
					t.Errorf("help missing %q:\n%s", want, out)
				}
			}
			if strings.Contains(h.stderr.String(), "ERROR") {
				t.Errorf("help must not report a fault:\n%s", h.stderr)
			}
		})
	}
}

func TestRunLogFileInMissingDirectory(t *testing.T) {
	t.Parallel()

	h := newHarness()
	tool := &fakeTool{}
	path := filepath.Join(t.TempDir(), "nonexistent", "dir", "out.log")
	code := h.run(tool, "--log_to_file", path)

	if code != types.ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, types.ExitFailure)
	}
	if tool.executed {
		t.Error("tool must not run when the log file cannot be opened")
	}
	out := h.stderr.String()
	for _, want := range []string{"RUNTIME ERROR", "stack trace", path} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "USER ERROR") {
		t.Errorf("sink failure must be an internal fault:\n%s", out)
	}
}

func TestRunUnknownLoggingLevel(t *testing.T) {
	t.Parallel()

	h := newHarness()
	tool := &fakeTool{}
	code := h.run(tool, "--logging_level", "VERBOSE")

	if code != types.ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, types.ExitFailure)
	}
	if tool.executed {
		t.Error("tool must not run with an invalid logging level")
	}
	out := h.stderr.String()
	if !strings.Contains(out, "USER ERROR") {
		t.Errorf("unknown level must be a user fault:\n%s", out)
	}
	if !strings.Contains(out, "MESSAGE: unable to match: VERBOSE") {
		t.Errorf("message must name the offending value:\n%s", out)
	}
}

func TestRunLoggingLevelCaseInsensitive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  logging.Level
	}{
		{"debug", logging.LevelDebug},
		{"Info", logging.LevelInfo},
		{"wArN", logging.LevelWarn},
		{"error", logging.LevelError},
		{"FATAL", logging.LevelFatal},
		{"off", logging.LevelOff},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			h := newHarness()
			tool := &fakeTool{}
			if code := h.run(tool, "-l", tt.value); code != types.ExitSuccess {
				t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
			}
			if tool.sawLevel != tt.want {
				t.Errorf("level = %s, want %s", tool.sawLevel, tt.want)
			}
		})
	}
}

func TestRunFileSinkAndQuiet(t *testing.T) {
	t.Parallel()

	h := newHarness()
	path := filepath.Join(t.TempDir(), "run.log")
	code := h.run(&fakeTool{}, "--log_to_file", path, "--quiet_output_mode")

	if code != types.ExitSuccess {
		t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
	}
	if strings.Contains(h.stderr.String(), "Program Name") {
		t.Errorf("quiet mode should keep header records off the console:\n%s", h.stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "Program Name: stingkit demo") {
		t.Errorf("log file missing header records:\n%s", data)
	}
}

func TestRunToolFaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tool     *fakeTool
		wantCode types.ExitCode
		want     string
	}{
		{"exit code passed through", &fakeTool{code: 3}, 3, ""},
		{"user error", &fakeTool{err: report.NewUserError("input file is empty")}, types.ExitFailure, "USER ERROR"},
		{"internal error", &fakeTool{err: errors.New("disk on fire")}, types.ExitFailure, "RUNTIME ERROR"},
		{"panic", &fakeTool{panicWith: "boom"}, types.ExitFailure, "MESSAGE: panic: boom"},
		{"exit code out of range", &fakeTool{code: 300}, types.ExitFailure, "invalid exit code 300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness()
			if code := h.run(tt.tool); code != tt.wantCode {
				t.Errorf("Run() = %d, want %d", code, tt.wantCode)
			}
			if tt.want != "" && !strings.Contains(h.stderr.String(), tt.want) {
				t.Errorf("stderr missing %q:\n%s", tt.want, h.stderr)
			}
		})
	}
}

func TestRunArgumentFaultPrintsUsage(t *testing.T) {
	t.Parallel()

	h := newHarness()
	var n int
	tool := &fakeTool{decls: func() []*args.Declaration {
		return []*args.Declaration{args.Int(&n, args.Spec{FullName: "count"})}
	}}
	code := h.run(tool, "--count", "lots")

	if code != types.ExitFailure {
		t.Fatalf("Run() = %d, want %d", code, types.ExitFailure)
	}
	out := h.stderr.String()
	if !strings.Contains(out, "Usage:") || !strings.Contains(out, "USER ERROR") {
		t.Errorf("argument fault should print usage then the banner:\n%s", out)
	}
	if !strings.Contains(out, "lots") {
		t.Errorf("message should name the bad value:\n%s", out)
	}
}

func TestRunDefaults(t *testing.T) {
	t.Parallel()

	h := newHarness()
	var in string
	tool := &fakeTool{decls: func() []*args.Declaration {
		return []*args.Declaration{args.String(&in, args.Spec{FullName: "input", Required: true})}
	}}
	defaults := func(name string) (string, bool) {
		if name == "input" {
			return "configured.txt", true
		}
		return "", false
	}
	code := Run(context.Background(), h.env, tool, nil, WithDefaults(defaults))

	if code != types.ExitSuccess {
		t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
	}
	if in != "configured.txt" {
		t.Errorf("input = %q, want the configured default", in)
	}
}

type pluginTool struct {
	fakeTool
	Plugin string
	Size   int
}

func (p *pluginTool) Arguments() []*args.Declaration {
	return []*args.Declaration{args.String(&p.Plugin, args.Spec{FullName: "plugin", Required: true})}
}

func (p *pluginTool) ArgumentSources(context.Context) ([]protocol.NamedSource, error) {
	if p.Plugin == "" {
		return nil, args.NewArgumentError("Argument with name '--plugin' is missing.")
	}
	return []protocol.NamedSource{{Name: p.Plugin, Source: args.SourceFunc(func() []*args.Declaration {
		return []*args.Declaration{args.Int(&p.Size, args.Spec{FullName: "size", Required: true})}
	})}}, nil
}

func TestRunDynamicTool(t *testing.T) {
	t.Parallel()

	h := newHarness()
	tool := &pluginTool{}
	code := h.run(tool, "--size", "7", "--plugin", "sizer", "-l", "warn")

	if code != types.ExitSuccess {
		t.Fatalf("Run() = %d, stderr:\n%s", code, h.stderr)
	}
	if !tool.executed || tool.Size != 7 {
		t.Errorf("executed = %v, size = %d", tool.executed, tool.Size)
	}
	if tool.sawLevel != logging.LevelWarn {
		t.Errorf("level = %s, want WARN", tool.sawLevel)
	}
}
