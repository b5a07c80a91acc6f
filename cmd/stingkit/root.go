// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/config"
	"github.com/stingkit/stingkit/internal/issue"
	"github.com/stingkit/stingkit/internal/startup"
)

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   appinfo.Toolkit,
		Short: "A toolkit of command-line text tools",
		Long: TitleStyle.Render(appinfo.Toolkit) + SubtitleStyle.Render(" - a toolkit of command-line text tools") + `

Each tool takes its own arguments plus the universal ones:
  --logging_level/-l, --log_to_file/-log, --quiet_output_mode/-quiet,
  --debug_mode/-debug and --help/-h.

Arguments can also be read from a file with @path, and defaults can be
set in the configuration file (see 'stingkit config path').

` + SubtitleStyle.Render("Examples:") + `
  stingkit count -I notes.txt
  stingkit analyze -T wordfreq -I notes.txt --top 5
  stingkit analyze -T grep --help
  stingkit config show`,
		SilenceUsage: true,
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stingkit/config.cue)")

	for _, factory := range app.Tools {
		root.AddCommand(newToolCommand(app, factory))
	}
	root.AddCommand(newConfigCommand(app, &cfgFile))
	return root
}

// newToolCommand wraps a tool. Flag parsing is left to the tool's own
// argument store, so --help reaches the tool as well.
func newToolCommand(app *App, factory ToolFactory) *cobra.Command {
	details := factory().ApplicationDetails()
	return &cobra.Command{
		Use:                details.Name + " [arguments]",
		Short:              summary(details),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, raw []string) error {
			return runTool(cmd.Context(), app, factory(), raw)
		},
	}
}

func runTool(ctx context.Context, app *App, tool startup.Tool, raw []string) error {
	name := tool.ApplicationDetails().Name

	var defaults args.Defaults
	cfg, err := app.Config.Load(ctx, config.LoadOptions{})
	if err != nil {
		// The tool still runs on its built-in defaults.
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
	} else {
		defaults = cfg.Defaults(name)
	}

	env := startup.NewEnvironment(app.stdout, app.stderr)
	if code := startup.Run(ctx, env, tool, raw, startup.WithDefaults(defaults)); !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

func summary(d appinfo.Details) string {
	if len(d.Header) > 1 {
		return d.Header[1]
	}
	return d.Name
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// errorHandler prints errors fang would print, except failures a tool has
// already reported.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported() {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the command tree and exits the process with its status.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(appinfo.VersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
