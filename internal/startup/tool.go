// SPDX-License-Identifier: MPL-2.0

package startup

import (
	"context"

	"github.com/stingkit/stingkit/internal/appinfo"
	"github.com/stingkit/stingkit/internal/args"
	"github.com/stingkit/stingkit/internal/protocol"
)

type (
	// Tool is a command-line program run by Run. Its own arguments are
	// registered under its application name.
	Tool interface {
		appinfo.Provider
		args.Source
		// Execute runs the tool after every argument is loaded and returns
		// the process exit status.
		Execute(ctx context.Context, env *Environment) (int, error)
	}

	// DynamicTool is a Tool whose remaining arguments depend on what the
	// first pass loaded.
	DynamicTool interface {
		Tool
		ArgumentSources(ctx context.Context) ([]protocol.NamedSource, error)
	}

	program struct {
		common *Common
		tool   Tool
		name   string
	}

	dynamicProgram struct {
		*program
		dyn DynamicTool
	}
)

func newProgram(common *Common, tool Tool, name string) protocol.Program {
	p := &program{common: common, tool: tool, name: name}
	if dyn, ok := tool.(DynamicTool); ok {
		return &dynamicProgram{program: p, dyn: dyn}
	}
	return p
}

func (p *program) StaticSources() []protocol.NamedSource {
	return []protocol.NamedSource{
		{Name: CommonSource, Source: p.common},
		{Name: p.name, Source: p.tool},
	}
}

func (p *dynamicProgram) DynamicSources(ctx context.Context) ([]protocol.NamedSource, error) {
	return p.dyn.ArgumentSources(ctx)
}
