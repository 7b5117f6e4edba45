package orclient

import (
	"context"
	"sync"
	"time"

	"github.com/elee1766/drover/src/aisdk"
)

// modelCache caches model metadata fetched from the models endpoint. Model
// descriptions arrive from the network and go stale, not wrong, so a plain
// TTL is enough.
type modelCache struct {
	mu        sync.RWMutex
	cache     map[string]*cachedModel
	listCache *cachedModelList
	ttl       time.Duration
	client    *Client
}

type cachedModel struct {
	model     *aisdk.ModelInfo
	fetchedAt time.Time
}

type cachedModelList struct {
	models    []*aisdk.ModelInfo
	fetchedAt time.Time
}

func newModelCache(client *Client, ttl time.Duration) *modelCache {
	return &modelCache{
		cache:  make(map[string]*cachedModel),
		ttl:    ttl,
		client: client,
	}
}

// GetModel gets a model from cache or fetches it.
func (mc *modelCache) GetModel(ctx context.Context, modelID string) (*aisdk.ModelInfo, error) {
	mc.mu.RLock()
	cached, exists := mc.cache[modelID]
	mc.mu.RUnlock()

	if exists && time.Since(cached.fetchedAt) < mc.ttl {
		return cached.model, nil
	}

	model, err := mc.client.getModelInfo(ctx, modelID)
	if err != nil {
		return nil, err
	}

	mc.mu.Lock()
	mc.cache[modelID] = &cachedModel{model: model, fetchedAt: time.Now()}
	mc.mu.Unlock()
	return model, nil
}

// GetModelList gets the model list from cache or fetches it.
func (mc *modelCache) GetModelList(ctx context.Context) ([]*aisdk.ModelInfo, error) {
	mc.mu.RLock()
	cached := mc.listCache
	mc.mu.RUnlock()

	if cached != nil && time.Since(cached.fetchedAt) < mc.ttl {
		return cached.models, nil
	}

	models, err := mc.client.listModelsUncached(ctx)
	if err != nil {
		return nil, err
	}

	mc.mu.Lock()
	mc.listCache = &cachedModelList{models: models, fetchedAt: time.Now()}
	mc.mu.Unlock()
	return models, nil
}

// Clear drops all cached entries.
func (mc *modelCache) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.cache = make(map[string]*cachedModel)
	mc.listCache = nil
}
