// Package tools re-exports the built-in tool constructors so callers can
// assemble a toolbox without importing each tool package.
package tools

import (
	"github.com/elee1766/drover/src/agent"
	tool_echo "github.com/elee1766/drover/src/droveragent/tools/tool_echo"
	tool_fetchurl "github.com/elee1766/drover/src/droveragent/tools/tool_fetchurl"
	tool_listdir "github.com/elee1766/drover/src/droveragent/tools/tool_listdir"
	tool_readfile "github.com/elee1766/drover/src/droveragent/tools/tool_readfile"
	"github.com/spf13/afero"
)

// Tool name constants - re-exported from individual packages
const (
	EchoName     = tool_echo.Name
	ReadFileName = tool_readfile.Name
	ListDirName  = tool_listdir.Name
	FetchURLName = tool_fetchurl.Name
)

func EchoTool() (agent.Tool, error)                { return tool_echo.Tool() }
func ReadFileTool(fs afero.Fs) (agent.Tool, error) { return tool_readfile.Tool(fs) }
func ListDirTool(fs afero.Fs) (agent.Tool, error)  { return tool_listdir.Tool(fs) }
func FetchURLTool() (agent.Tool, error)            { return tool_fetchurl.Tool() }
