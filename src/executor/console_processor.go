package executor

import (
	"fmt"
	"strings"
	"time"
)

// ConsoleProcessorConfig configures the console event processor
type ConsoleProcessorConfig struct {
	ShowTimestamps    bool
	ShowStepNumbers   bool
	ShowToolArguments bool
	ShowToolResults   bool
	RawMode           bool
	MaxResultPreview  int // Max characters to show in result preview
}

// ConsoleEventProcessor prints run events to stdout for interactive use.
type ConsoleEventProcessor struct {
	config ConsoleProcessorConfig
}

// NewConsoleEventProcessor creates a new console event processor
func NewConsoleEventProcessor(config ConsoleProcessorConfig) *ConsoleEventProcessor {
	if config.MaxResultPreview == 0 {
		config.MaxResultPreview = 200
	}
	return &ConsoleEventProcessor{config: config}
}

// Process handles a single event
func (p *ConsoleEventProcessor) Process(event RunEvent) error {
	if p.config.RawMode {
		// In raw mode, only the final answer is printed.
		if e, ok := event.(*RunCompleteEvent); ok && e.Status == StatusCompleted {
			fmt.Print(e.Answer)
		}
		return nil
	}

	switch e := event.(type) {
	case *AssistantMessageEvent:
		if e.Content != "" && len(e.ToolCalls) == 0 {
			fmt.Println(e.Content)
		}
	case *ToolCallRequestEvent:
		line := fmt.Sprintf("→ %s", e.ToolCall.Function.Name)
		if p.config.ShowToolArguments {
			line += " " + string(e.ToolCall.Function.Arguments)
		}
		p.printLine(e.BaseEvent, line)
	case *ToolCallResponseEvent:
		if p.config.ShowToolResults {
			p.printLine(e.BaseEvent, fmt.Sprintf("← %s (%s): %s",
				e.ToolName, e.Duration.Round(time.Millisecond), p.preview(e.Content)))
		}
	case *ToolCallErrorEvent:
		p.printLine(e.BaseEvent, fmt.Sprintf("✗ %s failed: %v", e.ToolName, e.Error))
	case *ErrorEvent:
		p.printLine(e.BaseEvent, fmt.Sprintf("error in %s: %v", e.Context, e.Error))
	case *RunCompleteEvent:
		if e.Status != StatusCompleted {
			p.printLine(e.BaseEvent, fmt.Sprintf("run ended: %s %s", e.Status, e.Detail))
		}
	}
	return nil
}

// Close cleans up resources
func (p *ConsoleEventProcessor) Close() error {
	return nil
}

func (p *ConsoleEventProcessor) printLine(base BaseEvent, line string) {
	var prefix string
	if p.config.ShowTimestamps {
		prefix += base.Timestamp.Format("15:04:05") + " "
	}
	if p.config.ShowStepNumbers {
		prefix += fmt.Sprintf("[%d] ", base.StepNumber)
	}
	fmt.Println(prefix + line)
}

func (p *ConsoleEventProcessor) preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > p.config.MaxResultPreview {
		return s[:p.config.MaxResultPreview] + "…"
	}
	return s
}
