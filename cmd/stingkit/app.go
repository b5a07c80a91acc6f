// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/stingkit/stingkit/internal/config"
	"github.com/stingkit/stingkit/internal/startup"
	"github.com/stingkit/stingkit/internal/tools"
)

type (
	// ToolFactory creates a fresh tool for one invocation.
	ToolFactory func() startup.Tool

	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every cobra handler receives an App reference.
	App struct {
		Config config.Provider
		Tools  []ToolFactory
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Tools  []ToolFactory
		Stdout io.Writer
		Stderr io.Writer
	}
)

// DefaultTools returns the tools shipped with the toolkit.
func DefaultTools() []ToolFactory {
	return []ToolFactory{
		func() startup.Tool { return tools.NewCount() },
		func() startup.Tool { return tools.NewAnalyze(tools.DefaultRegistry()) },
	}
}

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Tools == nil {
		deps.Tools = DefaultTools()
	}
	return &App{
		Config: deps.Config,
		Tools:  deps.Tools,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}
