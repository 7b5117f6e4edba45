package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Manager owns connections to multiple MCP servers.
type Manager interface {
	AddServer(config ServerConfig) error
	RemoveServer(name string) error
	GetServer(name string) Server
	ListServers() []string
	Close() error
}

type manager struct {
	mu      sync.RWMutex
	servers map[string]Server
	configs map[string]ServerConfig
	logger  *slog.Logger

	initParams *InitializeParams
}

// NewManager creates an MCP manager. Servers are initialized as they are
// added.
func NewManager(logger *slog.Logger) Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &manager{
		servers: make(map[string]Server),
		configs: make(map[string]ServerConfig),
		logger:  logger,
		initParams: &InitializeParams{
			ProtocolVersion: ProtocolVersion,
			ClientInfo: &ClientInfo{
				Name:    "drover",
				Version: "0.1.0",
			},
		},
	}
}

func (m *manager) AddServer(config ServerConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.servers[config.Name]; exists {
		return fmt.Errorf("server '%s' already exists", config.Name)
	}

	server, err := NewServer(config, m.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := server.Initialize(ctx, m.initParams); err != nil {
		server.Close()
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	m.servers[config.Name] = server
	m.configs[config.Name] = config
	m.logger.Info("mcp server added", "name", config.Name)
	return nil
}

func (m *manager) RemoveServer(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	server, exists := m.servers[name]
	if !exists {
		return fmt.Errorf("server '%s' not found", name)
	}

	if err := server.Close(); err != nil {
		m.logger.Error("error closing server", "name", name, "error", err)
	}
	delete(m.servers, name)
	delete(m.configs, name)
	return nil
}

func (m *manager) GetServer(name string) Server {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.servers[name]
}

func (m *manager) ListServers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.servers))
	for name := range m.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, server := range m.servers {
		if err := server.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close server '%s': %w", name, err))
		}
	}
	m.servers = make(map[string]Server)
	m.configs = make(map[string]ServerConfig)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing servers: %v", errs)
	}
	return nil
}
