package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/aisdk"
	"github.com/elee1766/drover/src/govern"
)

// StepVerdict is the step executor's continuation decision.
type StepVerdict int

const (
	// VerdictContinue means a tool round completed and the loop should ask
	// the model again.
	VerdictContinue StepVerdict = iota
	// VerdictFinish means the model produced a final answer.
	VerdictFinish
	// VerdictAbort means the step failed in a way that ends the run.
	VerdictAbort
)

// StepResult is the outcome of one step: the verdict plus the conversation
// as of the end of the step. Conversation is a fresh value; the input state
// is never mutated.
type StepResult struct {
	Verdict StepVerdict
	// Answer is set for VerdictFinish, already guarded.
	Answer string
	// AbortReason is set for VerdictAbort.
	AbortReason  string
	Conversation *aisdk.Conversation
}

// Step executes one loop iteration: ask the model for its next action under
// the call timeout, then either finish with its answer or run the requested
// tool calls. All externally sourced text is sanitized then truncated before
// it joins conversation state. A timeout or cancellation of an external call
// surfaces as a Go error wrapping the govern sentinel; the caller keeps its
// prior state, so no message for an unfinished call is ever appended.
func (s *Service) Step(ctx context.Context, state *aisdk.Conversation, cfg LoopConfig, stepNumber int) (*StepResult, error) {
	emitter := NewEventEmitter(s.sink, state.ID, stepNumber)

	var tools []*aisdk.ChatTool
	if s.toolbox != nil {
		tools = agent.ToChatTools(s.toolbox.Tools())
	}

	action, err := govern.Invoke(ctx, cfg.CallTimeout, func(ctx context.Context) (*aisdk.Action, error) {
		return s.proposer.Propose(ctx, state, tools)
	})
	if err != nil {
		emitter.EmitError(err, "propose")
		return nil, fmt.Errorf("model call: %w", err)
	}

	if action.Kind == aisdk.ActionFinalAnswer {
		// Models can echo injected content back out, so the final answer
		// gets the same treatment as tool output.
		answer := s.sanitizer.Apply(action.Answer, cfg.MaxResultChars)
		next := state.Append(&aisdk.Message{
			Role:      "assistant",
			Content:   answer,
			CreatedAt: time.Now(),
		})
		emitter.EmitAssistantMessage(answer, nil)
		return &StepResult{Verdict: VerdictFinish, Answer: answer, Conversation: next}, nil
	}

	next := state.Append(&aisdk.Message{
		Role:      "assistant",
		Content:   action.Content,
		ToolCalls: action.ToolCalls,
		CreatedAt: time.Now(),
	})
	emitter.EmitAssistantMessage(action.Content, action.ToolCalls)

	// Validate every requested tool before executing any of them: an unknown
	// tool aborts the run rather than being silently skipped.
	for _, call := range action.ToolCalls {
		if s.toolbox == nil || !s.toolbox.HasTool(call.Function.Name) {
			s.logger.Warn("model requested unregistered tool", "tool", call.Function.Name)
			emitter.EmitError(fmt.Errorf("%w: %s", ErrUnknownTool, call.Function.Name), "resolve tool")
			return &StepResult{Verdict: VerdictAbort, AbortReason: "unknown tool", Conversation: next}, nil
		}
	}

	for _, call := range action.ToolCalls {
		emitter.EmitToolCallRequest(call)
		s.logger.Debug("executing tool", "name", call.Function.Name, "id", call.ID)

		start := time.Now()
		resp, err := govern.Invoke(ctx, cfg.CallTimeout, func(ctx context.Context) (*aisdk.ToolResponse, error) {
			return s.toolbox.ExecuteTool(ctx, &call)
		})
		duration := time.Since(start)

		if err != nil {
			emitter.EmitToolCallError(call.Function.Name, call.ID, err, duration)
			switch {
			case isGovernStop(err):
				return nil, fmt.Errorf("tool %s: %w", call.Function.Name, err)
			default:
				// The tool itself failed; surface the detail verbatim.
				return &StepResult{
					Verdict:      VerdictAbort,
					AbortReason:  fmt.Sprintf("tool %s: %v", call.Function.Name, err),
					Conversation: next,
				}, nil
			}
		}

		guarded := s.sanitizer.Apply(string(resp.Content), cfg.MaxResultChars)
		next = next.Append(&aisdk.Message{
			Role:           "tool",
			Content:        guarded,
			Name:           call.Function.Name,
			ToolCallID:     call.ID,
			OriginExternal: true,
			CreatedAt:      time.Now(),
		})
		emitter.EmitToolCallResponse(call.Function.Name, call.ID, guarded, resp.IsError, duration)
	}

	return &StepResult{Verdict: VerdictContinue, Conversation: next}, nil
}

func isGovernStop(err error) bool {
	return errors.Is(err, govern.ErrTimedOut) || errors.Is(err, govern.ErrCancelled)
}
