package orclient

import (
	"context"
	"fmt"

	"github.com/elee1766/drover/src/aisdk"
)

var _ aisdk.ModelClient = (*ModelClient)(nil)

// ModelClient is a client bound to a specific model.
type ModelClient struct {
	client *Client
	model  *aisdk.ModelInfo
}

// Model creates a ModelClient bound to the specified model.
func (c *Client) Model(ctx context.Context, modelName string) (aisdk.ModelClient, error) {
	modelInfo, err := c.modelCache.GetModel(ctx, modelName)
	if err != nil {
		return nil, fmt.Errorf("failed to get model info for %s: %w", modelName, err)
	}
	return &ModelClient{client: c, model: modelInfo}, nil
}

// CreateChatCompletion creates a chat completion with the bound model.
func (mc *ModelClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	req.Model = mc.model.ID
	return mc.client.createChatCompletion(ctx, req)
}

// GetModelInfo returns the bound model's metadata.
func (mc *ModelClient) GetModelInfo() *aisdk.ModelInfo {
	return mc.model
}
