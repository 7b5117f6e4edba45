package executor

import (
	"fmt"
	"time"

	"github.com/elee1766/drover/src/aisdk"
)

// EventType represents the type of run event
type EventType string

const (
	EventUserMessage      EventType = "user_message"
	EventAssistantMessage EventType = "assistant_message"

	EventToolCallRequest  EventType = "tool_call_request"
	EventToolCallResponse EventType = "tool_call_response"
	EventToolCallError    EventType = "tool_call_error"

	EventError       EventType = "error"
	EventRunComplete EventType = "run_complete"
)

// RunEvent is the base interface for all run events
type RunEvent interface {
	GetType() EventType
	GetTimestamp() time.Time
	GetRunID() string
	GetStepNumber() int
}

// BaseEvent contains common fields for all events
type BaseEvent struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id"`
	StepNumber int       `json:"step_number"`
}

func (e BaseEvent) GetType() EventType      { return e.Type }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetRunID() string        { return e.RunID }
func (e BaseEvent) GetStepNumber() int      { return e.StepNumber }

// UserMessageEvent represents the user message that seeded the run
type UserMessageEvent struct {
	BaseEvent
	Message string `json:"message"`
}

// AssistantMessageEvent represents a model response, final or intermediate
type AssistantMessageEvent struct {
	BaseEvent
	Content   string           `json:"content"`
	ToolCalls []aisdk.ToolCall `json:"tool_calls,omitempty"`
}

// ToolCallRequestEvent represents a tool call request
type ToolCallRequestEvent struct {
	BaseEvent
	ToolCall aisdk.ToolCall `json:"tool_call"`
}

// ToolCallResponseEvent represents a completed tool call. Content is the
// guarded text as appended to conversation state, not the raw tool output.
type ToolCallResponseEvent struct {
	BaseEvent
	ToolName string        `json:"tool_name"`
	ToolID   string        `json:"tool_id"`
	Content  string        `json:"content"`
	IsError  bool          `json:"is_error"`
	Duration time.Duration `json:"duration"`
}

// ToolCallErrorEvent represents a failed tool call
type ToolCallErrorEvent struct {
	BaseEvent
	ToolName string        `json:"tool_name"`
	ToolID   string        `json:"tool_id"`
	Error    error         `json:"error"`
	Duration time.Duration `json:"duration"`
}

// ErrorEvent represents an error during the run
type ErrorEvent struct {
	BaseEvent
	Error   error  `json:"error"`
	Context string `json:"context"` // Where the error occurred
}

// RunCompleteEvent represents the terminal outcome of a run
type RunCompleteEvent struct {
	BaseEvent
	Status     RunStatus `json:"status"`
	Answer     string    `json:"answer,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	StepsTaken int       `json:"steps_taken"`
}

// EventSink is the interface for handling run events
type EventSink interface {
	// Send sends an event to the sink (non-blocking)
	Send(event RunEvent) error

	// Close closes the event sink
	Close() error
}

// EventProcessor processes run events
type EventProcessor interface {
	// Process handles a single event
	Process(event RunEvent) error

	// Close cleans up any resources
	Close() error
}

// ChannelEventSink implements EventSink using Go channels
type ChannelEventSink struct {
	events     chan RunEvent
	processors []EventProcessor
	done       chan struct{}
}

// NewChannelEventSink creates a new channel-based event sink
func NewChannelEventSink(bufferSize int, processors ...EventProcessor) *ChannelEventSink {
	sink := &ChannelEventSink{
		events:     make(chan RunEvent, bufferSize),
		processors: processors,
		done:       make(chan struct{}),
	}

	go sink.processEvents()

	return sink
}

// Send sends an event to the sink
func (s *ChannelEventSink) Send(event RunEvent) error {
	select {
	case s.events <- event:
		return nil
	case <-s.done:
		return fmt.Errorf("event sink is closed")
	}
}

// Close drains pending events and closes all processors.
func (s *ChannelEventSink) Close() error {
	close(s.events)
	<-s.done

	for _, p := range s.processors {
		if err := p.Close(); err != nil {
			fmt.Printf("Error closing processor: %v\n", err)
		}
	}

	return nil
}

func (s *ChannelEventSink) processEvents() {
	defer close(s.done)

	for event := range s.events {
		for _, processor := range s.processors {
			if err := processor.Process(event); err != nil {
				fmt.Printf("Error processing event: %v\n", err)
			}
		}
	}
}
