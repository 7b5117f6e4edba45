package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config    string `short:"c" help:"Path to a config file (skips discovery)"`
	APIKey    string `env:"OPENROUTER_API_KEY" help:"OpenRouter API key"`
	BaseURL   string `help:"Custom API base URL"`
	LogLevel  string `help:"Log level (debug, info, warn, error)"`
	LogFormat string `help:"Log format (text, json)"`

	Run   RunCmd   `cmd:"" help:"Execute a single task through the bounded loop"`
	Tools ToolsCmd `cmd:"" help:"List available tools"`
	Runs  RunsCmd  `cmd:"" help:"List recorded runs"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("drover"),
		kong.Description("Bounded LLM task runner"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
