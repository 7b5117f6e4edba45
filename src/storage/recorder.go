package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/elee1766/drover/src/executor"
)

var _ executor.EventProcessor = (*Recorder)(nil)

// Recorder persists run events as they are emitted. Plugged into the loop's
// event sink it produces a complete transcript: the run row, every message
// appended to run state, and every tool execution with its timing. What it
// stores is what the loop appended, so tool output lands here already
// guarded.
type Recorder struct {
	db     *DB
	model  string
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewRecorder creates a transcript recorder writing to db. The model name is
// recorded on each run row.
func NewRecorder(db *DB, model string, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		db:     db,
		model:  model,
		logger: logger,
		seen:   make(map[string]bool),
	}
}

// Process handles a single run event.
func (r *Recorder) Process(event executor.RunEvent) error {
	ctx := context.Background()

	if err := r.ensureRun(ctx, event.GetRunID()); err != nil {
		return err
	}

	switch e := event.(type) {
	case *executor.UserMessageEvent:
		return CreateMessage(ctx, r.db.DB(), &Message{
			RunID:      e.GetRunID(),
			StepNumber: e.GetStepNumber(),
			Role:       "user",
			Content:    e.Message,
			CreatedAt:  e.GetTimestamp(),
		})

	case *executor.AssistantMessageEvent:
		var toolCalls *string
		if len(e.ToolCalls) > 0 {
			if data, err := json.Marshal(e.ToolCalls); err == nil {
				s := string(data)
				toolCalls = &s
			}
		}
		return CreateMessage(ctx, r.db.DB(), &Message{
			RunID:      e.GetRunID(),
			StepNumber: e.GetStepNumber(),
			Role:       "assistant",
			Content:    e.Content,
			ToolCalls:  toolCalls,
			CreatedAt:  e.GetTimestamp(),
		})

	case *executor.ToolCallResponseEvent:
		if err := CreateMessage(ctx, r.db.DB(), &Message{
			RunID:          e.GetRunID(),
			StepNumber:     e.GetStepNumber(),
			Role:           "tool",
			Name:           e.ToolName,
			ToolCallID:     e.ToolID,
			Content:        e.Content,
			OriginExternal: true,
			CreatedAt:      e.GetTimestamp(),
		}); err != nil {
			return err
		}
		return CreateToolExecution(ctx, r.db.DB(), &ToolExecution{
			RunID:      e.GetRunID(),
			StepNumber: e.GetStepNumber(),
			ToolName:   e.ToolName,
			ToolCallID: e.ToolID,
			Output:     e.Content,
			DurationMs: e.Duration.Milliseconds(),
			CreatedAt:  e.GetTimestamp(),
		})

	case *executor.ToolCallErrorEvent:
		return CreateToolExecution(ctx, r.db.DB(), &ToolExecution{
			RunID:      e.GetRunID(),
			StepNumber: e.GetStepNumber(),
			ToolName:   e.ToolName,
			ToolCallID: e.ToolID,
			Error:      e.Error.Error(),
			DurationMs: e.Duration.Milliseconds(),
			CreatedAt:  e.GetTimestamp(),
		})

	case *executor.RunCompleteEvent:
		return FinishRun(ctx, r.db.DB(), e.GetRunID(), string(e.Status), e.Answer, e.Detail, e.StepsTaken)
	}

	return nil
}

// ensureRun creates the run row the first time an event for it arrives.
func (r *Recorder) ensureRun(ctx context.Context, runID string) error {
	if runID == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[runID] {
		return nil
	}

	existing, err := GetRunByID(ctx, r.db.DB(), runID)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := CreateRun(ctx, r.db.DB(), &Run{ID: runID, Model: r.model}); err != nil {
			return err
		}
	}
	r.seen[runID] = true
	return nil
}

// Close implements executor.EventProcessor. The DB is owned by the caller.
func (r *Recorder) Close() error {
	return nil
}
