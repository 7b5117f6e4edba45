// Package agent provides the tool registry the loop executor resolves tool
// calls against.
package agent

import (
	"context"

	"github.com/elee1766/drover/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetType returns the tool type (always "function" for now)
	GetType() string

	// GetName returns the tool's name
	GetName() string

	// GetDescription returns the tool's description
	GetDescription() string

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}

// ExternallyDescribed is implemented by tools whose description metadata was
// fetched from a dynamic third-party source at runtime. Such descriptions
// must be sanitized before they participate in prompt construction; the
// contract is enforced where the tool is built, not by convention at call
// sites.
type ExternallyDescribed interface {
	DescriptionIsExternal() bool
}

// DescriptionIsExternal reports whether the tool's description came from a
// dynamic source. Tools that do not implement ExternallyDescribed are
// trusted, compiled-in tools.
func DescriptionIsExternal(tool Tool) bool {
	if ext, ok := tool.(ExternallyDescribed); ok {
		return ext.DescriptionIsExternal()
	}
	return false
}

// ToolExecutor is a function type for tool execution
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
