// Package mcp is a minimal MCP (Model Context Protocol) client. It speaks
// newline-delimited JSON-RPC to tool servers over stdio and exposes their
// tools to the agent loop. Everything a server sends, including tool names
// and descriptions, is untrusted input.
package mcp

import (
	"context"
	"encoding/json"
	"time"
)

const ProtocolVersion = "1.0.0"

// Standard JSON-RPC error codes
const (
	ErrorCodeParse          = -32700
	ErrorCodeInvalidRequest = -32600
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInvalidParams  = -32602
	ErrorCodeInternal       = -32603
)

// Request methods
const (
	MethodInitialize = "initialize"
	MethodListTools  = "tools/list"
	MethodCallTool   = "tools/call"
	MethodPing       = "ping"
)

// Message represents a JSON-RPC message.
type Message struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeParams for the initialize request.
type InitializeParams struct {
	ProtocolVersion string           `json:"protocolVersion"`
	Capabilities    ClientCapability `json:"capabilities"`
	ClientInfo      *ClientInfo      `json:"clientInfo,omitempty"`
}

// InitializeResult from the initialize response.
type InitializeResult struct {
	ProtocolVersion string           `json:"protocolVersion"`
	Capabilities    ServerCapability `json:"capabilities"`
	ServerInfo      *ServerInfo      `json:"serverInfo,omitempty"`
}

// ClientCapability describes client capabilities.
type ClientCapability struct {
	Experimental map[string]interface{} `json:"experimental,omitempty"`
}

// ServerCapability describes server capabilities.
type ServerCapability struct {
	Tools        *ToolsCapability       `json:"tools,omitempty"`
	Experimental map[string]interface{} `json:"experimental,omitempty"`
}

// ToolsCapability indicates tool support.
type ToolsCapability struct {
	ListTools bool `json:"listTools,omitempty"`
}

// ClientInfo provides client identification.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerInfo provides server identification.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Tool represents a tool as declared by a server. Name and Description are
// server-controlled text.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// CallToolParams for tool execution.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallToolResult from tool execution.
type CallToolResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ContentItem represents a piece of tool result content.
type ContentItem struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Transport moves JSON-RPC messages to and from a server.
type Transport interface {
	Send(ctx context.Context, message *Message) error
	Receive(ctx context.Context) (*Message, error)
	Close() error
}

// Server represents a connection to one MCP server.
type Server interface {
	Initialize(ctx context.Context, params *InitializeParams) (*InitializeResult, error)
	ListTools(ctx context.Context) ([]Tool, error)
	CallTool(ctx context.Context, name string, arguments json.RawMessage) (*CallToolResult, error)
	Close() error
}

// ServerConfig holds configuration for launching one server.
type ServerConfig struct {
	Name          string            `json:"name"`
	Command       string            `json:"command"`
	Args          []string          `json:"args"`
	Env           map[string]string `json:"env,omitempty"`
	WorkingDir    string            `json:"workingDir,omitempty"`
	TransportType string            `json:"transportType,omitempty"` // "stdio" (default)
	Timeout       time.Duration     `json:"timeout,omitempty"`
}
