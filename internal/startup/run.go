// SPDX-License-Identifier: MPL-2.0

package startup

import (
	"context"
	"fmt"

	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/help"
	"github.com/stingkit/stingkit/internal/issue"
	"github.com/stingkit/stingkit/internal/protocol"
	"github.com/stingkit/stingkit/internal/report"
	"github.com/stingkit/stingkit/pkg/types"
)

type (
	// Option configures Run.
	Option func(*runConfig)

	runConfig struct {
		defaults args.Defaults
		common   *Common
	}
)

// WithDefaults supplies configured values for arguments absent from the
// command line.
func WithDefaults(d args.Defaults) Option {
	return func(c *runConfig) { c.defaults = d }
}

// WithCommon makes Run load the universal arguments into c, so callers can
// inspect them afterwards.
func WithCommon(c *Common) Option {
	return func(rc *runConfig) { rc.common = c }
}

// Run resolves raw for tool, runs it and returns the exit code. Help exits
// with success; every fault is reported on env.Stderr and exits with failure.
func Run(ctx context.Context, env *Environment, tool Tool, raw []string, opts ...Option) types.ExitCode {
	cfg := runConfig{common: NewCommon()}
	for _, opt := range opts {
		opt(&cfg)
	}
	common := cfg.common
	details := tool.ApplicationDetails().WithDefaults()
	defer func() { _ = env.Logger.Close() }()

	resolver := &protocol.Resolver{
		Details: details,
		Help:    help.NewRenderer(env.Stdout),
		Logger:  env.Logger.Log(),
		Hooks: protocol.Hooks{Loaded: func(bool) error {
			return common.ApplyLogging(env.Logger)
		}},
	}
	sess := protocol.NewSession(args.NewStore(args.WithDefaults(cfg.defaults)), raw)
	res := resolver.Resolve(ctx, sess, newProgram(common, tool, details.Name))

	// Debug mode is only known once the universal arguments have loaded.
	reporter := func() *report.Reporter { return report.NewReporter(env.Stderr, details, common.Debug) }

	switch res.Outcome {
	case protocol.OutcomeHelp:
		fmt.Fprint(env.Stdout, res.Help)
		return types.ExitSuccess
	case protocol.OutcomeFault:
		return reporter().Report(res.Err, res.Usage)
	}

	env.Logger.SetQuiet(common.Quiet)
	if common.LogToFile != "" {
		if err := env.Logger.AddFileSink(common.LogToFile); err != nil {
			return reporter().Report(issue.NewErrorContext().
				WithOperation("open log file").
				WithResource(common.LogToFile).
				WithSuggestion("check that the parent directory exists and is writable").
				Wrap(err).
				BuildError(), "")
		}
	}

	for _, line := range help.HeaderLines(details, raw, env.Clock.Now()) {
		env.Logger.Log().Info(line)
	}

	if err := sess.MarkDispatched(); err != nil {
		return reporter().Report(err, "")
	}
	code, err := execute(ctx, env, tool)
	if err != nil {
		return reporter().Report(err, "")
	}
	exit := types.ExitCode(code)
	if err := exit.Validate(); err != nil {
		return reporter().Report(err, "")
	}
	return exit
}

// execute calls the tool, turning a panic into an internal fault.
func execute(ctx context.Context, env *Environment, tool Tool) (code int, err error) {
	defer func() {
		if v := recover(); v != nil {
			code, err = int(types.ExitFailure), report.NewPanicError(v)
		}
	}()
	return tool.Execute(ctx, env)
}
