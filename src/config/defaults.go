package config

import "time"

// DefaultConfig returns the baseline configuration. Loop.MaxSteps is
// deliberately left zero: the step ceiling is an explicit choice, not a
// default.
func DefaultConfig() *Config {
	saveTranscripts := true
	return &Config{
		Version: "1.0",
		API: APIConfig{
			Provider:     "openrouter",
			APIKeyEnvVar: "OPENROUTER_API_KEY",
			Timeout:      30 * time.Second,
			RetryCount:   3,
			RetryDelay:   time.Second,
		},
		Agent: AgentConfig{
			Model:       "anthropic/claude-sonnet-4",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Loop: LoopConfig{
			MaxResultChars: 16384,
			CallTimeout:    2 * time.Minute,
		},
		Guard: GuardConfig{
			MaxToolDescriptionChars: 1024,
		},
		Storage: StorageConfig{
			SaveTranscripts: &saveTranscripts,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
