package executor

import (
	"context"
	"errors"

	"github.com/elee1766/drover/src/aisdk"
	"github.com/elee1766/drover/src/govern"
	"github.com/google/uuid"
)

// Run drives the loop to a terminal outcome: ask the model, execute the
// requested tools, repeat. It is the single owner of conversation state for
// the duration of the run and executes strictly sequentially; one step
// completes fully before the next begins.
//
// The step ceiling and the context are both checked before each step starts,
// never after, so the limit bounds cost and side effects. A step already in
// flight is not force-killed on cancellation; it is raced against the call
// timeout by the governor and its late result discarded.
//
// Run returns an error only for an invalid configuration or a missing
// collaborator. Every in-run failure comes back as a RunOutcome carrying the
// partial conversation state accumulated so far.
func (s *Service) Run(ctx context.Context, initial *aisdk.Conversation, cfg LoopConfig) (*RunOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if s.proposer == nil {
		return nil, ErrProposerRequired
	}

	state := initial
	if state == nil {
		state = aisdk.NewConversation(uuid.New().String(), "")
	}

	// Surface the seeding user message so transcript consumers see the full
	// exchange, not just what the loop appended.
	emitter := NewEventEmitter(s.sink, state.ID, 0)
	for _, msg := range state.Messages {
		if msg.Role == "user" {
			emitter.EmitUserMessage(msg.Content)
		}
	}

	steps := 0
	for {
		// Both checks happen strictly before the step starts, and neither is
		// ever skipped because of a prior step's outcome.
		if ctx.Err() != nil {
			return s.finish(&RunOutcome{Status: StatusCancelled, StepsTaken: steps, FinalState: state}), nil
		}
		if steps >= cfg.MaxSteps {
			return s.finish(&RunOutcome{Status: StatusLimitExceeded, StepsTaken: steps, FinalState: state}), nil
		}

		result, err := s.Step(ctx, state, cfg, steps)
		if err != nil {
			// The failed step contributes no messages; state stays as of the
			// last completed step.
			switch {
			case errors.Is(err, govern.ErrTimedOut):
				return s.finish(&RunOutcome{Status: StatusTimedOut, StepsTaken: steps, FinalState: state}), nil
			case errors.Is(err, govern.ErrCancelled):
				return s.finish(&RunOutcome{Status: StatusCancelled, StepsTaken: steps, FinalState: state}), nil
			default:
				return s.finish(&RunOutcome{Status: StatusToolError, Detail: err.Error(), StepsTaken: steps, FinalState: state}), nil
			}
		}

		steps++
		state = result.Conversation

		switch result.Verdict {
		case VerdictFinish:
			return s.finish(&RunOutcome{Status: StatusCompleted, Answer: result.Answer, StepsTaken: steps, FinalState: state}), nil
		case VerdictAbort:
			return s.finish(&RunOutcome{Status: StatusToolError, Detail: result.AbortReason, StepsTaken: steps, FinalState: state}), nil
		}
	}
}

func (s *Service) finish(outcome *RunOutcome) *RunOutcome {
	s.logger.Info("run finished",
		"status", outcome.Status,
		"steps", outcome.StepsTaken,
		"messages", outcome.FinalState.Len(),
	)
	emitter := NewEventEmitter(s.sink, outcome.FinalState.ID, outcome.StepsTaken)
	emitter.EmitRunComplete(outcome)
	return outcome
}
