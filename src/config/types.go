// Package config loads drover configuration from layered JSON files with
// environment overrides on top.
package config

import (
	"time"
)

// Config is the complete configuration for drover.
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// API configuration
	API APIConfig `json:"api"`

	// Agent configuration
	Agent AgentConfig `json:"agent"`

	// Loop bounds applied to every run
	Loop LoopConfig `json:"loop"`

	// Guard configuration for externally sourced text
	Guard GuardConfig `json:"guard"`

	// Storage configuration for run transcripts
	Storage StorageConfig `json:"storage"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// MCP server configurations
	MCPServers []MCPServerConfig `json:"mcp_servers,omitempty"`

	// Debug enables general debug logging
	Debug bool `json:"debug,omitempty"`
}

// APIConfig holds API-related configuration.
type APIConfig struct {
	// Provider specifies the AI provider (e.g., "openrouter")
	Provider string `json:"provider" validate:"provider"`

	// BaseURL overrides the default API endpoint
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// APIKey for authentication (can be omitted if using env vars)
	APIKey string `json:"api_key,omitempty"`

	// APIKeyEnvVar specifies the environment variable to read the API key from
	APIKeyEnvVar string `json:"api_key_env_var,omitempty"`

	// Timeout for API requests
	Timeout time.Duration `json:"timeout,omitempty" validate:"min=0"`

	// RetryCount for failed API requests
	RetryCount int `json:"retry_count,omitempty" validate:"min=0"`

	// RetryDelay between retries
	RetryDelay time.Duration `json:"retry_delay,omitempty" validate:"min=0"`
}

// AgentConfig holds model and prompt configuration.
type AgentConfig struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature" validate:"min=0,max=2"`
	MaxTokens    int     `json:"max_tokens" validate:"min=0"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// LoopConfig bounds each run. MaxSteps has no baked-in default: it must come
// from a config file, an environment override, or the command line, or runs
// refuse to start.
type LoopConfig struct {
	// MaxSteps is the hard ceiling on loop iterations per run
	MaxSteps int `json:"max_steps" validate:"min=0"`

	// MaxResultChars caps externally sourced text entering run state
	MaxResultChars int `json:"max_result_chars" validate:"min=0"`

	// CallTimeout bounds each model and tool invocation
	CallTimeout time.Duration `json:"call_timeout,omitempty" validate:"min=0"`
}

// GuardConfig configures the sanitizer applied to tool results and other
// externally sourced text.
type GuardConfig struct {
	// ExtraPatterns are additional regex patterns to neutralize, on top of
	// the built-in set
	ExtraPatterns []string `json:"extra_patterns,omitempty"`

	// MaxToolDescriptionChars caps dynamically sourced tool descriptions
	MaxToolDescriptionChars int `json:"max_tool_description_chars,omitempty" validate:"min=0"`
}

// StorageConfig configures run transcript persistence.
type StorageConfig struct {
	// DatabasePath overrides the default transcript database location
	DatabasePath string `json:"database_path,omitempty"`

	// SaveTranscripts enables persisting run transcripts. A pointer so a
	// partial config file leaves the default alone.
	SaveTranscripts *bool `json:"save_transcripts,omitempty"`
}

// LoggingConfig defines logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level,omitempty" validate:"log_level"`

	// Format is the output format (text, json)
	Format string `json:"format,omitempty" validate:"log_format"`
}

// MCPServerConfig holds one MCP server configuration.
type MCPServerConfig struct {
	Name          string            `json:"name"`
	Command       string            `json:"command"`
	Args          []string          `json:"args,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
	TransportType string            `json:"transport_type,omitempty"`
}

// ConfigPrecedence defines the order of configuration loading.
type ConfigPrecedence struct {
	SystemConfig  string
	UserConfig    string
	ProjectConfig string
	LocalConfig   string

	// EnvironmentPrefix for env var overrides
	EnvironmentPrefix string
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	return e.Message
}

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"
	SourceUser        ConfigSource = "user"
	SourceProject     ConfigSource = "project"
	SourceLocal       ConfigSource = "local"
	SourceEnvironment ConfigSource = "environment"
	SourceCLI         ConfigSource = "cli"
)
