package executor

import (
	"time"

	"github.com/elee1766/drover/src/aisdk"
)

// EventEmitter helps emit events with common fields. A nil sink makes every
// emit a no-op.
type EventEmitter struct {
	sink       EventSink
	runID      string
	stepNumber int
}

// NewEventEmitter creates a new event emitter
func NewEventEmitter(sink EventSink, runID string, stepNumber int) *EventEmitter {
	return &EventEmitter{
		sink:       sink,
		runID:      runID,
		stepNumber: stepNumber,
	}
}

func (e *EventEmitter) createBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Timestamp:  time.Now(),
		RunID:      e.runID,
		StepNumber: e.stepNumber,
	}
}

// EmitUserMessage emits a user message event
func (e *EventEmitter) EmitUserMessage(message string) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&UserMessageEvent{
		BaseEvent: e.createBaseEvent(EventUserMessage),
		Message:   message,
	})
}

// EmitAssistantMessage emits a complete assistant message event
func (e *EventEmitter) EmitAssistantMessage(content string, toolCalls []aisdk.ToolCall) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&AssistantMessageEvent{
		BaseEvent: e.createBaseEvent(EventAssistantMessage),
		Content:   content,
		ToolCalls: toolCalls,
	})
}

// EmitToolCallRequest emits a tool call request event
func (e *EventEmitter) EmitToolCallRequest(toolCall aisdk.ToolCall) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&ToolCallRequestEvent{
		BaseEvent: e.createBaseEvent(EventToolCallRequest),
		ToolCall:  toolCall,
	})
}

// EmitToolCallResponse emits a completed tool call event
func (e *EventEmitter) EmitToolCallResponse(toolName, toolID, content string, isError bool, duration time.Duration) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&ToolCallResponseEvent{
		BaseEvent: e.createBaseEvent(EventToolCallResponse),
		ToolName:  toolName,
		ToolID:    toolID,
		Content:   content,
		IsError:   isError,
		Duration:  duration,
	})
}

// EmitToolCallError emits a failed tool call event
func (e *EventEmitter) EmitToolCallError(toolName, toolID string, err error, duration time.Duration) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&ToolCallErrorEvent{
		BaseEvent: e.createBaseEvent(EventToolCallError),
		ToolName:  toolName,
		ToolID:    toolID,
		Error:     err,
		Duration:  duration,
	})
}

// EmitError emits an error event
func (e *EventEmitter) EmitError(err error, context string) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&ErrorEvent{
		BaseEvent: e.createBaseEvent(EventError),
		Error:     err,
		Context:   context,
	})
}

// EmitRunComplete emits the terminal outcome event
func (e *EventEmitter) EmitRunComplete(outcome *RunOutcome) error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Send(&RunCompleteEvent{
		BaseEvent:  e.createBaseEvent(EventRunComplete),
		Status:     outcome.Status,
		Answer:     outcome.Answer,
		Detail:     outcome.Detail,
		StepsTaken: outcome.StepsTaken,
	})
}
