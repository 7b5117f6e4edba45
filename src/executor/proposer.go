package executor

import (
	"context"
	"fmt"

	"github.com/elee1766/drover/src/aisdk"
)

// ChatProposer adapts a chat-completion model client into the Proposer the
// loop consumes: a response carrying tool calls becomes a tool-call action,
// anything else is the final answer.
type ChatProposer struct {
	Client aisdk.ModelClient

	// Optional sampling overrides passed through on every request.
	Temperature *float64
	MaxTokens   *int
}

var _ aisdk.Proposer = (*ChatProposer)(nil)

func (p *ChatProposer) Propose(ctx context.Context, conversation *aisdk.Conversation, tools []*aisdk.ChatTool) (*aisdk.Action, error) {
	req := &aisdk.ChatCompletionRequest{
		Model:       p.Client.GetModelInfo().ID,
		Messages:    conversation.WireMessages(),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Tools:       tools,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}

	resp, err := p.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		return aisdk.ToolCallAction(msg.Content, msg.ToolCalls), nil
	}
	return aisdk.FinalAnswer(msg.Content), nil
}
