package main

import (
	"fmt"

	"github.com/elee1766/drover/src/config"
)

// loadConfig resolves the effective configuration: discovered (or explicit)
// config files, environment overrides, then top-level CLI flags on top.
func loadConfig(cli *CLI) (*config.Config, error) {
	precedence := config.GetConfigPaths()
	if cli.Config != "" {
		precedence = config.ConfigPrecedence{
			UserConfig:        cli.Config,
			EnvironmentPrefix: "DROVER",
		}
	}

	cfg, err := config.NewLoader(precedence).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cli.APIKey != "" {
		cfg.API.APIKey = cli.APIKey
	}
	if cli.BaseURL != "" {
		cfg.API.BaseURL = cli.BaseURL
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}

	return cfg, nil
}

// databasePath resolves the transcript database location.
func databasePath(cfg *config.Config) string {
	if cfg.Storage.DatabasePath != "" {
		return cfg.Storage.DatabasePath
	}
	return config.DefaultDatabasePath()
}
