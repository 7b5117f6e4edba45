package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type server struct {
	config    ServerConfig
	transport Transport
	logger    *slog.Logger

	requestID atomic.Int64
	pendingMu sync.Mutex
	pending   map[interface{}]chan *Message

	initMu       sync.Mutex
	initialized  bool
	capabilities ServerCapability
	serverInfo   *ServerInfo

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer launches a server per its config and starts the receive loop.
// The connection is not usable until Initialize succeeds.
func NewServer(config ServerConfig, logger *slog.Logger) (Server, error) {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	var transport Transport
	var err error
	switch config.TransportType {
	case "", "stdio":
		transport, err = NewStdioTransport(config, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create stdio transport: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", config.TransportType)
	}

	return newServerWithTransport(config, transport, logger), nil
}

func newServerWithTransport(config ServerConfig, transport Transport, logger *slog.Logger) *server {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &server{
		config:    config,
		transport: transport,
		logger:    logger.With("server", config.Name),
		pending:   make(map[interface{}]chan *Message),
		ctx:       ctx,
		cancel:    cancel,
	}

	s.wg.Add(1)
	go s.receiveLoop()
	return s
}

// receiveLoop routes responses to their waiting request.
func (s *server) receiveLoop() {
	defer s.wg.Done()

	for {
		msg, err := s.transport.Receive(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			s.logger.Error("error receiving message", "error", err)
			return
		}

		if msg.ID == nil {
			// Server-initiated notification; nothing consumes these yet.
			s.logger.Debug("received server notification", "method", msg.Method)
			continue
		}

		s.pendingMu.Lock()
		if ch, ok := s.pending[normalizeID(msg.ID)]; ok {
			ch <- msg
			delete(s.pending, normalizeID(msg.ID))
		} else {
			s.logger.Warn("response for unknown request", "id", msg.ID)
		}
		s.pendingMu.Unlock()
	}
}

// normalizeID folds the types json.Unmarshal may produce for an ID into one
// comparable value; we send int64 IDs but receive float64 back.
func normalizeID(id interface{}) interface{} {
	switch v := id.(type) {
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return id
	}
}

func (s *server) sendRequest(ctx context.Context, method string, params interface{}) (*Message, error) {
	id := s.requestID.Add(1)

	var paramsJSON json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		paramsJSON = data
	}

	respCh := make(chan *Message, 1)
	s.pendingMu.Lock()
	s.pending[normalizeID(id)] = respCh
	s.pendingMu.Unlock()

	abandon := func() {
		s.pendingMu.Lock()
		delete(s.pending, normalizeID(id))
		s.pendingMu.Unlock()
	}

	if err := s.transport.Send(ctx, &Message{ID: id, Method: method, Params: paramsJSON}); err != nil {
		abandon()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	select {
	case <-ctx.Done():
		abandon()
		return nil, ctx.Err()
	case <-time.After(s.config.Timeout):
		abandon()
		return nil, fmt.Errorf("request timeout for %s", method)
	case resp := <-respCh:
		if resp.Error != nil {
			return nil, fmt.Errorf("server error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return resp, nil
	}
}

func (s *server) Initialize(ctx context.Context, params *InitializeParams) (*InitializeResult, error) {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if s.initialized {
		return nil, fmt.Errorf("already initialized")
	}

	resp, err := s.sendRequest(ctx, MethodInitialize, params)
	if err != nil {
		return nil, err
	}

	var result InitializeResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal initialize result: %w", err)
	}

	s.capabilities = result.Capabilities
	s.serverInfo = result.ServerInfo
	s.initialized = true

	s.logger.Info("mcp server initialized", "info", s.serverInfo)
	return &result, nil
}

func (s *server) ListTools(ctx context.Context) ([]Tool, error) {
	if !s.isInitialized() {
		return nil, fmt.Errorf("not initialized")
	}
	if s.capabilities.Tools == nil {
		return nil, nil
	}

	resp, err := s.sendRequest(ctx, MethodListTools, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tools: %w", err)
	}
	return result.Tools, nil
}

func (s *server) CallTool(ctx context.Context, name string, arguments json.RawMessage) (*CallToolResult, error) {
	if !s.isInitialized() {
		return nil, fmt.Errorf("not initialized")
	}
	if s.capabilities.Tools == nil {
		return nil, fmt.Errorf("server doesn't support tools")
	}

	resp, err := s.sendRequest(ctx, MethodCallTool, CallToolParams{Name: name, Arguments: arguments})
	if err != nil {
		return nil, err
	}

	var result CallToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool result: %w", err)
	}
	return &result, nil
}

func (s *server) isInitialized() bool {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	return s.initialized
}

func (s *server) Close() error {
	s.cancel()

	// Closing the transport unblocks the receive loop's pending read.
	err := s.transport.Close()
	s.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}
