package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Loader handles loading and merging configurations from multiple sources.
type Loader struct {
	precedence ConfigPrecedence
	validator  *Validator
}

// NewLoader creates a new configuration loader.
func NewLoader(precedence ConfigPrecedence) *Loader {
	return &Loader{
		precedence: precedence,
		validator:  NewValidator(),
	}
}

// Load loads configuration from all sources and merges them, lowest
// precedence first. A missing file is fine; a malformed one is an error.
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	sources := []struct {
		path   string
		source ConfigSource
	}{
		{l.precedence.SystemConfig, SourceSystem},
		{l.precedence.UserConfig, SourceUser},
		{l.precedence.ProjectConfig, SourceProject},
		{l.precedence.LocalConfig, SourceLocal},
	}

	for _, src := range sources {
		if src.path == "" {
			continue
		}
		if cfg, err := l.loadFile(src.path); err == nil {
			config = l.mergeConfigs(config, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s config from %s: %w", src.source, src.path, err)
		}
	}

	if l.precedence.EnvironmentPrefix != "" {
		l.applyEnvironmentOverrides(config)
	}

	// The API key env var indirection resolves last so files never need to
	// hold the secret itself.
	if config.API.APIKey == "" && config.API.APIKeyEnvVar != "" {
		config.API.APIKey = os.Getenv(config.API.APIKeyEnvVar)
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &config, nil
}

// SaveFile saves configuration to a file.
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// mergeConfigs merges two configurations with the second taking precedence.
func (l *Loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.API.Provider != "" {
		result.API.Provider = override.API.Provider
	}
	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.APIKey != "" {
		result.API.APIKey = override.API.APIKey
	}
	if override.API.APIKeyEnvVar != "" {
		result.API.APIKeyEnvVar = override.API.APIKeyEnvVar
	}
	if override.API.Timeout != 0 {
		result.API.Timeout = override.API.Timeout
	}
	if override.API.RetryCount != 0 {
		result.API.RetryCount = override.API.RetryCount
	}
	if override.API.RetryDelay != 0 {
		result.API.RetryDelay = override.API.RetryDelay
	}

	if override.Agent.Model != "" {
		result.Agent.Model = override.Agent.Model
	}
	if override.Agent.Temperature != 0 {
		result.Agent.Temperature = override.Agent.Temperature
	}
	if override.Agent.MaxTokens != 0 {
		result.Agent.MaxTokens = override.Agent.MaxTokens
	}
	if override.Agent.SystemPrompt != "" {
		result.Agent.SystemPrompt = override.Agent.SystemPrompt
	}

	if override.Loop.MaxSteps != 0 {
		result.Loop.MaxSteps = override.Loop.MaxSteps
	}
	if override.Loop.MaxResultChars != 0 {
		result.Loop.MaxResultChars = override.Loop.MaxResultChars
	}
	if override.Loop.CallTimeout != 0 {
		result.Loop.CallTimeout = override.Loop.CallTimeout
	}

	if len(override.Guard.ExtraPatterns) > 0 {
		result.Guard.ExtraPatterns = override.Guard.ExtraPatterns
	}
	if override.Guard.MaxToolDescriptionChars != 0 {
		result.Guard.MaxToolDescriptionChars = override.Guard.MaxToolDescriptionChars
	}

	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Storage.SaveTranscripts != nil {
		result.Storage.SaveTranscripts = override.Storage.SaveTranscripts
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	if len(override.MCPServers) > 0 {
		result.MCPServers = override.MCPServers
	}
	if override.Debug {
		result.Debug = true
	}

	return &result
}

// applyEnvironmentOverrides applies environment variable overrides.
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	prefix := l.precedence.EnvironmentPrefix

	if apiKey := os.Getenv(prefix + "_API_KEY"); apiKey != "" {
		config.API.APIKey = apiKey
	}
	if model := os.Getenv(prefix + "_MODEL"); model != "" {
		config.Agent.Model = model
	}
	if baseURL := os.Getenv(prefix + "_BASE_URL"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	if level := os.Getenv(prefix + "_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if maxSteps := os.Getenv(prefix + "_MAX_STEPS"); maxSteps != "" {
		if n, err := strconv.Atoi(maxSteps); err == nil {
			config.Loop.MaxSteps = n
		}
	}
	if maxChars := os.Getenv(prefix + "_MAX_RESULT_CHARS"); maxChars != "" {
		if n, err := strconv.Atoi(maxChars); err == nil {
			config.Loop.MaxResultChars = n
		}
	}
	if timeout := os.Getenv(prefix + "_CALL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Loop.CallTimeout = d
		}
	}
}

// GetConfigPaths returns the configuration file paths to check.
func GetConfigPaths() ConfigPrecedence {
	userConfigPath := filepath.Join(xdg.ConfigHome, "drover", "config.json")

	systemConfigPath := "/etc/drover/config.json"
	if runtime.GOOS == "windows" {
		systemConfigPath = filepath.Join(os.Getenv("PROGRAMDATA"), "drover", "config.json")
	}

	return ConfigPrecedence{
		SystemConfig:      systemConfigPath,
		UserConfig:        userConfigPath,
		ProjectConfig:     filepath.Join(".drover", "config.json"),
		LocalConfig:       filepath.Join(".drover", "config.local.json"),
		EnvironmentPrefix: "DROVER",
	}
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	paths := GetConfigPaths()

	checkPaths := []string{
		paths.LocalConfig,
		paths.ProjectConfig,
		paths.UserConfig,
		paths.SystemConfig,
	}
	for _, path := range checkPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no configuration file found")
}
