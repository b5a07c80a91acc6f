// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/protocol"
	"github.com/stingkit/stingkit/internal/startup"
)

// Analyze runs one analysis, chosen on the command line, over a text file.
// The chosen analysis contributes its own arguments.
type Analyze struct {
	Input        string
	AnalysisType string

	registry *Registry
	selected Analysis
}

// NewAnalyze returns the analyze tool backed by registry.
func NewAnalyze(registry *Registry) *Analyze {
	return &Analyze{registry: registry}
}

// ApplicationDetails implements appinfo.Provider.
func (a *Analyze) ApplicationDetails() appinfo.Details {
	d := appinfo.New("analyze", "Runs a text analysis over a file.")
	var sb strings.Builder
	sb.WriteString("Available analyses:\n\n")
	for _, name := range a.registry.Names() {
		an, _ := a.registry.Lookup(name)
		fmt.Fprintf(&sb, "- `%s`: %s\n", name, an.Summary())
	}
	sb.WriteString("\nCombine `-T <analysis>` with `--help` to list that analysis's arguments.")
	d.Description = sb.String()
	d.RunningInstructions = "stingkit analyze -T <analysis> -I <file> [arguments]"
	return d
}

// Arguments implements args.Source.
func (a *Analyze) Arguments() []*args.Declaration {
	return []*args.Declaration{
		args.String(&a.Input, args.Spec{FullName: "input", ShortName: "I", Doc: "File to analyze, or - for standard input", Required: true}),
		args.String(&a.AnalysisType, args.Spec{
			FullName:  "analysis_type",
			ShortName: "T",
			Doc:       "Analysis to run: " + strings.Join(a.registry.Names(), ", "),
			Required:  true,
		}),
	}
}

// ArgumentSources implements startup.DynamicTool. It runs after the first
// pass has loaded --analysis_type.
func (a *Analyze) ArgumentSources(context.Context) ([]protocol.NamedSource, error) {
	if a.AnalysisType == "" {
		return nil, args.NewArgumentError("Argument with name '--analysis_type' (-T) is missing.")
	}
	an, ok := a.registry.Lookup(a.AnalysisType)
	if !ok {
		return nil, args.NewArgumentError("Analysis '%s' is not one of: %s", a.AnalysisType, strings.Join(a.registry.Names(), ", "))
	}
	a.selected = an
	return []protocol.NamedSource{{Name: a.AnalysisType, Source: an}}, nil
}

// Execute implements startup.Tool.
func (a *Analyze) Execute(ctx context.Context, env *startup.Environment) (int, error) {
	if a.selected == nil {
		return 1, fmt.Errorf("analysis %q was never selected", a.AnalysisType)
	}
	in, err := openInput(a.Input)
	if err != nil {
		return 1, err
	}
	defer func() { _ = in.Close() }()

	env.Logger.Log().Debug("running analysis", "type", a.AnalysisType, "input", a.Input)
	if err := a.selected.Run(ctx, in, env); err != nil {
		return 1, err
	}
	return 0, nil
}
