package orclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elee1766/drover/src/aisdk"
)

// ModelsResponse represents the response from the OpenRouter models API.
type ModelsResponse struct {
	Data []*aisdk.ModelInfo `json:"data"`
}

// ListModels returns all available models, served from cache when fresh.
func (c *Client) ListModels(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	return c.modelCache.GetModelList(ctx)
}

// GetModelByID returns a specific model by ID.
func (c *Client) GetModelByID(ctx context.Context, modelID string) (*aisdk.ModelInfo, error) {
	return c.modelCache.GetModel(ctx, modelID)
}

// FindModelByName searches for a model by name (case-insensitive). An exact
// ID match wins; otherwise the first partial match on ID or name.
func (c *Client) FindModelByName(ctx context.Context, name string) (*aisdk.ModelInfo, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	searchName := strings.ToLower(name)
	for _, model := range models {
		if strings.ToLower(model.ID) == searchName {
			return model, nil
		}
	}
	for _, model := range models {
		if strings.Contains(strings.ToLower(model.ID), searchName) ||
			strings.Contains(strings.ToLower(model.Name), searchName) {
			return model, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
}

// getModelInfo fetches a single model's metadata from the models endpoint.
func (c *Client) getModelInfo(ctx context.Context, modelID string) (*aisdk.ModelInfo, error) {
	models, err := c.listModelsUncached(ctx)
	if err != nil {
		return nil, err
	}
	for _, model := range models {
		if model.ID == modelID {
			return model, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
}

// listModelsUncached fetches the model list from the API.
func (c *Client) listModelsUncached(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleError(resp)
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return modelsResp.Data, nil
}
