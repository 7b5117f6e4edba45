package aisdk

import (
	"context"
)

// Provider represents an AI provider interface
type Provider interface {
	GetModels(ctx context.Context) ([]*ModelInfo, error)
	Model(ctx context.Context, modelName string) (ModelClient, error)
}

// ModelClient represents a client for a specific model
type ModelClient interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
	GetModelInfo() *ModelInfo
}

// Proposer is the model collaborator as the loop executor sees it: given the
// conversation so far, propose the next action. The executor wraps the call
// with its own timeout; implementations must not retry past the deadline.
type Proposer interface {
	Propose(ctx context.Context, conversation *Conversation, tools []*ChatTool) (*Action, error)
}
