package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/elee1766/drover/src/aisdk"
)

// DefaultToolbox is the toolbox instantiation used throughout the codebase.
type DefaultToolbox = Toolbox[Tool]

// Toolbox is the tool registry. It is populated during setup and read-only
// during a run; the executor resolves tool calls against it.
type Toolbox[T Tool] struct {
	tools      map[string]T
	middleware []ToolMiddleware
}

// ToolMiddleware is a function that wraps a ToolExecutor to add functionality.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// NewToolbox creates an empty toolbox.
func NewToolbox[T Tool]() *Toolbox[T] {
	return &Toolbox[T]{
		tools: make(map[string]T),
	}
}

// RegisterTool registers a tool. Registering a second tool under the same
// name is rejected rather than silently replacing the first.
func (tm *Toolbox[T]) RegisterTool(tool T) error {
	if tool.GetName() == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := tm.tools[tool.GetName()]; exists {
		return fmt.Errorf("tool %s is already registered", tool.GetName())
	}
	tm.tools[tool.GetName()] = tool
	return nil
}

// RegisterMiddleware registers middleware applied to all tool executions.
// Middleware runs in registration order (first registered = outermost layer).
func (tm *Toolbox[T]) RegisterMiddleware(middleware ToolMiddleware) {
	tm.middleware = append(tm.middleware, middleware)
}

// Tools returns the registered tools sorted by name.
func (tm *Toolbox[T]) Tools() []T {
	names := make([]string, 0, len(tm.tools))
	for name := range tm.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]T, 0, len(names))
	for _, name := range names {
		out = append(out, tm.tools[name])
	}
	return out
}

// GetTool returns a specific tool by name.
func (tm *Toolbox[T]) GetTool(name string) (T, bool) {
	tool, exists := tm.tools[name]
	return tool, exists
}

// HasTool checks if a tool is available.
func (tm *Toolbox[T]) HasTool(name string) bool {
	_, exists := tm.tools[name]
	return exists
}

// ExecuteTool executes a tool call with the middleware chain applied.
func (tm *Toolbox[T]) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, exists := tm.tools[call.Function.Name]
	if !exists {
		return nil, fmt.Errorf("tool %s not found", call.Function.Name)
	}

	executor := ToolExecutor(tool.Execute)
	for i := len(tm.middleware) - 1; i >= 0; i-- {
		executor = tm.middleware[i](executor)
	}
	return executor(ctx, call)
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger interface {
	Info(msg string, args ...interface{})
}) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "params", string(call.Function.Arguments))
			result, err := next(ctx, call)
			if err != nil {
				logger.Info("tool execution failed", "error", err)
			}
			return result, err
		}
	}
}
