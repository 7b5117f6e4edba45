package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/aisdk"
	"github.com/elee1766/drover/src/config"
	"github.com/elee1766/drover/src/droveragent"
	"github.com/elee1766/drover/src/droveragent/toolsutil"
	"github.com/elee1766/drover/src/executor"
	"github.com/elee1766/drover/src/fs"
	"github.com/elee1766/drover/src/guard"
	"github.com/elee1766/drover/src/mcp"
	"github.com/elee1766/drover/src/orclient"
	"github.com/elee1766/drover/src/storage"
	"github.com/elee1766/drover/src/theme"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// RunCmd executes a single task through the bounded loop.
type RunCmd struct {
	Prompt []string `arg:"" help:"The task to run"`

	Model          string        `short:"m" help:"Model to use for this run"`
	SystemPrompt   string        `short:"s" help:"Override the system prompt"`
	MaxSteps       int           `help:"Hard ceiling on loop iterations for this run"`
	MaxResultChars int           `help:"Cap on tool result size entering run state"`
	CallTimeout    time.Duration `help:"Per-call timeout for model and tool invocations"`

	NoTools   bool `help:"Run without any tools"`
	NoNetwork bool `help:"Disable the fetch_url tool"`
	NoSave    bool `help:"Do not record the run transcript"`
	Raw       bool `help:"Print only the final answer"`
	Verbose   bool `short:"v" help:"Show tool arguments and results as the run progresses"`
}

func (r *RunCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	r.applyOverrides(cfg)

	if cfg.Loop.MaxSteps <= 0 {
		return fmt.Errorf("a step limit is required: set --max-steps, DROVER_MAX_STEPS, or loop.max_steps in the config")
	}
	if cfg.API.APIKey == "" {
		return fmt.Errorf("no API key configured: set --api-key or %s", cfg.API.APIKeyEnvVar)
	}

	logger := newLogger(cfg.Logging)
	toolsutil.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := orclient.NewClient(orclient.Config{
		APIKey:     cfg.API.APIKey,
		BaseURL:    cfg.API.BaseURL,
		Logger:     logger,
		Timeout:    cfg.API.Timeout,
		RetryCount: cfg.API.RetryCount,
		RetryDelay: cfg.API.RetryDelay,
	})
	modelClient, err := client.Model(ctx, cfg.Agent.Model)
	if err != nil {
		return fmt.Errorf("failed to bind model %s: %w", cfg.Agent.Model, err)
	}

	sanitizer := guard.NewSanitizer(cfg.Guard.ExtraPatterns...)

	toolbox, cleanup, err := r.buildToolbox(ctx, cfg, sanitizer, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	systemPrompt := cfg.Agent.SystemPrompt
	if r.SystemPrompt != "" {
		systemPrompt = r.SystemPrompt
	}
	if systemPrompt == "" {
		systemPrompt = droveragent.GenerateSystemPrompt(toolbox)
	}

	processors := []executor.EventProcessor{
		executor.NewConsoleEventProcessor(executor.ConsoleProcessorConfig{
			RawMode:           r.Raw,
			ShowStepNumbers:   r.Verbose,
			ShowToolArguments: r.Verbose,
			ShowToolResults:   r.Verbose,
		}),
	}

	saveTranscripts := cfg.Storage.SaveTranscripts == nil || *cfg.Storage.SaveTranscripts
	if saveTranscripts && !r.NoSave {
		dbPath := databasePath(cfg)
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open transcript database: %w", err)
		}
		defer db.Close()
		processors = append(processors, storage.NewRecorder(db, cfg.Agent.Model, logger))
	}

	sink := executor.NewChannelEventSink(64, processors...)

	service := executor.NewService(executor.ServiceConfig{
		Proposer: &executor.ChatProposer{
			Client:      modelClient,
			Temperature: &cfg.Agent.Temperature,
			MaxTokens:   &cfg.Agent.MaxTokens,
		},
		Toolbox:   toolbox,
		Sanitizer: sanitizer,
		EventSink: sink,
		Logger:    logger,
	})

	conversation := aisdk.NewConversation(uuid.New().String(), systemPrompt).
		Append(&aisdk.Message{Role: "user", Content: strings.Join(r.Prompt, " ")})

	outcome, err := service.Run(ctx, conversation, executor.LoopConfig{
		MaxSteps:       cfg.Loop.MaxSteps,
		MaxResultChars: cfg.Loop.MaxResultChars,
		CallTimeout:    cfg.Loop.CallTimeout,
	})

	// Drain the sink before printing the summary so event output and the
	// status line do not interleave.
	sink.Close()

	if err != nil {
		return err
	}
	return r.report(outcome)
}

func (r *RunCmd) applyOverrides(cfg *config.Config) {
	if r.Model != "" {
		cfg.Agent.Model = r.Model
	}
	if r.MaxSteps > 0 {
		cfg.Loop.MaxSteps = r.MaxSteps
	}
	if r.MaxResultChars > 0 {
		cfg.Loop.MaxResultChars = r.MaxResultChars
	}
	if r.CallTimeout > 0 {
		cfg.Loop.CallTimeout = r.CallTimeout
	}
}

// buildToolbox assembles the built-in tools plus any configured MCP servers.
// The returned cleanup shuts down the server connections.
func (r *RunCmd) buildToolbox(ctx context.Context, cfg *config.Config, sanitizer *guard.Sanitizer, logger *slog.Logger) (*agent.DefaultToolbox, func(), error) {
	noop := func() {}
	if r.NoTools {
		return nil, noop, nil
	}

	cwd, _ := os.Getwd()
	toolbox, err := droveragent.BuildToolbox(droveragent.ToolboxConfig{
		FS:            fs.NewContextualFs(afero.NewOsFs(), cwd),
		EnableNetwork: !r.NoNetwork,
		Logger:        logger,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to build toolbox: %w", err)
	}

	if len(cfg.MCPServers) == 0 {
		return toolbox, noop, nil
	}

	manager := mcp.NewManager(logger)
	for _, server := range cfg.MCPServers {
		err := manager.AddServer(mcp.ServerConfig{
			Name:          server.Name,
			Command:       server.Command,
			Args:          server.Args,
			Env:           server.Env,
			TransportType: server.TransportType,
		})
		if err != nil {
			// A broken server config degrades the run, it does not abort it.
			logger.Error("failed to start mcp server", "server", server.Name, "error", err)
		}
	}

	bridge := &mcp.ToolBridge{
		Manager:      manager,
		Sanitizer:    sanitizer,
		MaxDescChars: cfg.Guard.MaxToolDescriptionChars,
		Logger:       logger,
	}
	remoteTools, err := bridge.BuildTools(ctx)
	if err != nil {
		manager.Close()
		return nil, noop, fmt.Errorf("failed to list remote tools: %w", err)
	}
	for _, tool := range remoteTools {
		if err := toolbox.RegisterTool(tool); err != nil {
			logger.Error("failed to register remote tool", "tool", tool.GetName(), "error", err)
		}
	}

	cleanup := func() {
		if err := manager.Close(); err != nil {
			logger.Error("failed to shut down mcp servers", "error", err)
		}
	}
	return toolbox, cleanup, nil
}

func (r *RunCmd) report(outcome *executor.RunOutcome) error {
	steps := theme.MutedStyle.Render(fmt.Sprintf("(%d steps)", outcome.StepsTaken))

	switch outcome.Status {
	case executor.StatusCompleted:
		if !r.Raw {
			fmt.Println(theme.SuccessStyle.Render("completed"), steps)
		}
		return nil
	case executor.StatusLimitExceeded:
		fmt.Println(theme.WarningStyle.Render("step limit reached"), steps)
		return fmt.Errorf("run stopped at the step limit without a final answer")
	case executor.StatusTimedOut:
		fmt.Println(theme.WarningStyle.Render("timed out"), steps)
		return fmt.Errorf("a call exceeded the per-call timeout")
	case executor.StatusCancelled:
		fmt.Println(theme.WarningStyle.Render("cancelled"), steps)
		return fmt.Errorf("run cancelled")
	default:
		fmt.Println(theme.ErrorStyle.Render("failed"), steps)
		return fmt.Errorf("run failed: %s", outcome.Detail)
	}
}
