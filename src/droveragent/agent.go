// Package droveragent assembles the built-in toolbox and system prompt for
// a drover run.
package droveragent

import (
	"fmt"
	"log/slog"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/droveragent/tools"
	"github.com/elee1766/drover/src/droveragent/toolsutil"
	"github.com/spf13/afero"
)

// ToolboxConfig controls which built-in tools are registered.
type ToolboxConfig struct {
	// FS backs the file tools. Defaults to the OS filesystem.
	FS afero.Fs

	// EnableNetwork registers the fetch_url tool.
	EnableNetwork bool

	// Logger is passed down to the tool packages.
	Logger *slog.Logger
}

// BuildToolbox registers the built-in tools and returns the toolbox.
func BuildToolbox(cfg ToolboxConfig) (*agent.DefaultToolbox, error) {
	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}
	if cfg.Logger != nil {
		toolsutil.SetLogger(cfg.Logger)
	}

	toolbox := agent.NewToolbox[agent.Tool]()

	constructors := []func() (agent.Tool, error){
		tools.EchoTool,
		func() (agent.Tool, error) { return tools.ReadFileTool(cfg.FS) },
		func() (agent.Tool, error) { return tools.ListDirTool(cfg.FS) },
	}
	if cfg.EnableNetwork {
		constructors = append(constructors, tools.FetchURLTool)
	}

	for _, construct := range constructors {
		tool, err := construct()
		if err != nil {
			return nil, fmt.Errorf("failed to build tool: %w", err)
		}
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", tool.GetName(), err)
		}
	}

	return toolbox, nil
}
