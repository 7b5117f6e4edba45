package orclient

import (
	"log/slog"
	"time"
)

// Config holds configuration for the OpenRouter client.
type Config struct {
	APIKey     string        // OpenRouter API key
	BaseURL    string        // Base URL for the OpenRouter API
	Logger     *slog.Logger  // Logger for debugging
	Timeout    time.Duration // HTTP timeout
	RetryCount int           // Number of attempts for failed requests
	RetryDelay time.Duration // Base delay between retries
	SiteURL    string        // Site URL for ranking
	SiteName   string        // Site name for ranking
}
