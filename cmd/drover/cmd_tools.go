package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/elee1766/drover/src/droveragent"
	"github.com/elee1766/drover/src/theme"
)

// ToolsCmd lists the built-in tools.
type ToolsCmd struct {
	Format string `short:"f" enum:"table,json,simple" default:"table" help:"Output format"`
}

func (c *ToolsCmd) Run(cli *CLI) error {
	toolbox, err := droveragent.BuildToolbox(droveragent.ToolboxConfig{EnableNetwork: true})
	if err != nil {
		return fmt.Errorf("failed to build toolbox: %w", err)
	}

	tools := toolbox.Tools()
	sort.Slice(tools, func(i, j int) bool { return tools[i].GetName() < tools[j].GetName() })

	switch c.Format {
	case "json":
		type toolInfo struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		infos := make([]toolInfo, 0, len(tools))
		for _, tool := range tools {
			infos = append(infos, toolInfo{Name: tool.GetName(), Description: tool.GetDescription()})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)

	case "simple":
		for _, tool := range tools {
			fmt.Println(tool.GetName())
		}
		return nil

	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION")
		for _, tool := range tools {
			desc := tool.GetDescription()
			if idx := strings.IndexByte(desc, '\n'); idx >= 0 {
				desc = desc[:idx]
			}
			fmt.Fprintf(w, "%s\t%s\n", theme.ToolNameStyle.Render(tool.GetName()), strings.TrimSpace(desc))
		}
		return w.Flush()
	}
}
