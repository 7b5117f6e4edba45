package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/elee1766/drover/src/aisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	Text string `json:"text" required:"true" description:"Text to echo back"`
}

type echoOutput struct {
	Text string `json:"text"`
}

func newEchoTool(t *testing.T) Tool {
	t.Helper()
	tool, err := NewGenericTool("echo", "Echo the input text",
		func(ctx context.Context, input echoInput) (echoOutput, error) {
			return echoOutput{Text: input.Text}, nil
		})
	require.NoError(t, err)
	return tool
}

func callFor(name string, args string) *aisdk.ToolCall {
	return &aisdk.ToolCall{
		ID:   "call-1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      name,
			Arguments: json.RawMessage(args),
		},
	}
}

func TestToolboxRegisterAndResolve(t *testing.T) {
	tb := NewToolbox[Tool]()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))

	tool, ok := tb.GetTool("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", tool.GetName())
	assert.True(t, tb.HasTool("echo"))
	assert.False(t, tb.HasTool("nope"))
}

func TestToolboxRejectsDuplicates(t *testing.T) {
	tb := NewToolbox[Tool]()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))
	err := tb.RegisterTool(newEchoTool(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestToolboxToolsSorted(t *testing.T) {
	tb := NewToolbox[Tool]()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, tb.RegisterTool(&FuncTool{Name: name, Executor: func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			return &aisdk.ToolResponse{Type: "success"}, nil
		}}))
	}
	tools := tb.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, "alpha", tools[0].GetName())
	assert.Equal(t, "mid", tools[1].GetName())
	assert.Equal(t, "zeta", tools[2].GetName())
}

func TestToolboxExecuteUnknownTool(t *testing.T) {
	tb := NewToolbox[Tool]()
	_, err := tb.ExecuteTool(context.Background(), callFor("missing", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestToolboxMiddlewareOrder(t *testing.T) {
	tb := NewToolbox[Tool]()
	require.NoError(t, tb.RegisterTool(newEchoTool(t)))

	var order []string
	mk := func(name string) ToolMiddleware {
		return func(next ToolExecutor) ToolExecutor {
			return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
				order = append(order, name)
				return next(ctx, call)
			}
		}
	}
	tb.RegisterMiddleware(mk("outer"))
	tb.RegisterMiddleware(mk("inner"))

	resp, err := tb.ExecuteTool(context.Background(), callFor("echo", `{"text":"hi"}`))
	require.NoError(t, err)
	assert.False(t, resp.IsError)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestGenericToolExecute(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), callFor("echo", `{"text":"hello"}`))
	require.NoError(t, err)
	require.False(t, resp.IsError)

	var out echoOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "hello", out.Text)
}

func TestGenericToolMissingRequiredField(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), callFor("echo", `{}`))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "required field 'text'")
}

func TestGenericToolBadArguments(t *testing.T) {
	tool := newEchoTool(t)

	resp, err := tool.Execute(context.Background(), callFor("echo", `not json`))
	require.NoError(t, err)
	assert.True(t, resp.IsError)
}

func TestDescriptionIsExternal(t *testing.T) {
	builtin := newEchoTool(t)
	assert.False(t, DescriptionIsExternal(builtin))

	remote := &FuncTool{Name: "remote", Description: "served remotely", External: true}
	assert.True(t, DescriptionIsExternal(remote))
}
