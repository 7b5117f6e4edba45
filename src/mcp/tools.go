package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/aisdk"
	"github.com/elee1766/drover/src/guard"
	schemautil "github.com/elee1766/drover/src/schema"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// toolNameRE accepts names safe to splice into a prefixed identifier. A
// server declaring a name outside this set is skipped, not repaired.
var toolNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ToolBridge converts server-declared tools into toolbox entries. Tool
// descriptions are server-controlled text that ends up in the model prompt,
// so each one passes through the sanitizer and the length cap before the
// FuncTool is built.
type ToolBridge struct {
	Manager      Manager
	Sanitizer    *guard.Sanitizer
	MaxDescChars int
	Logger       *slog.Logger
}

// BuildTools lists every connected server's tools and wraps them as
// externally described FuncTools, names prefixed with the server name.
func (b *ToolBridge) BuildTools(ctx context.Context) ([]*agent.FuncTool, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sanitizer := b.Sanitizer
	if sanitizer == nil {
		sanitizer = guard.NewSanitizer()
	}

	var out []*agent.FuncTool
	for _, serverName := range b.Manager.ListServers() {
		server := b.Manager.GetServer(serverName)
		if server == nil {
			continue
		}

		tools, err := server.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tools from %s: %w", serverName, err)
		}

		for _, tool := range tools {
			if !toolNameRE.MatchString(tool.Name) {
				logger.Warn("skipping tool with unsafe name",
					"server", serverName, "name", tool.Name)
				continue
			}

			// A tool without a declared input schema still needs one on the
			// wire; an empty object schema accepts any arguments.
			schemaDef := schemautil.CreateObjectSchema(nil, nil)
			if len(tool.InputSchema) > 0 {
				schemaDef = &jsonschema.Schema{}
				if err := json.Unmarshal(tool.InputSchema, schemaDef); err != nil {
					logger.Warn("skipping tool with invalid schema",
						"server", serverName, "name", tool.Name, "error", err)
					continue
				}
			}

			out = append(out, &agent.FuncTool{
				Type:        "function",
				Name:        fmt.Sprintf("%s_%s", serverName, tool.Name),
				Description: sanitizer.Apply(tool.Description, b.MaxDescChars),
				Parameters:  schemaDef,
				External:    true,
				Executor:    b.executor(server, tool.Name),
			})
		}
	}
	return out, nil
}

func (b *ToolBridge) executor(server Server, remoteName string) agent.ToolExecutor {
	return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
		result, err := server.CallTool(ctx, remoteName, call.Function.Arguments)
		if err != nil {
			return nil, err
		}
		return &aisdk.ToolResponse{
			Type:    "mcp",
			Content: []byte(flattenContent(result.Content)),
			IsError: result.IsError,
		}, nil
	}
}

// flattenContent joins textual content items; non-text items are reported by
// type so the model knows something was omitted.
func flattenContent(items []ContentItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch {
		case item.Text != "":
			parts = append(parts, item.Text)
		default:
			parts = append(parts, fmt.Sprintf("[%s content omitted]", item.Type))
		}
	}
	return strings.Join(parts, "\n")
}
