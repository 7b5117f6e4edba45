package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// CreateRun inserts a new run row.
func CreateRun(ctx context.Context, db Execer, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = "running"
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.UpdatedAt.IsZero() {
		run.UpdatedAt = run.CreatedAt
	}

	query := `INSERT INTO runs (id, status, answer, detail, steps_taken, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, run.ID, run.Status, run.Answer, run.Detail, run.StepsTaken, run.Model, run.CreatedAt, run.UpdatedAt)
	return err
}

// FinishRun records the terminal outcome of a run.
func FinishRun(ctx context.Context, db Execer, runID, status, answer, detail string, stepsTaken int) error {
	query := `UPDATE runs SET status = ?, answer = ?, detail = ?, steps_taken = ?, updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, status, answer, detail, stepsTaken, time.Now(), runID)
	return err
}

// GetRunByID retrieves a run by its ID, or nil when absent.
func GetRunByID(ctx context.Context, db sqlscan.Querier, runID string) (*Run, error) {
	query := `SELECT id, status, answer, detail, steps_taken, model, created_at, updated_at FROM runs WHERE id = ?`
	var run Run
	err := sqlscan.Get(ctx, db, &run, query, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(ctx context.Context, db sqlscan.Querier, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, status, answer, detail, steps_taken, model, created_at, updated_at FROM runs ORDER BY created_at DESC LIMIT ?`
	var runs []Run
	if err := sqlscan.Select(ctx, db, &runs, query, limit); err != nil {
		return nil, err
	}
	return runs, nil
}

// CreateMessage inserts a transcript message.
func CreateMessage(ctx context.Context, db Execer, message *Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `INSERT INTO messages (id, run_id, step_number, role, name, tool_call_id, content, tool_calls, origin_external, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		message.ID,
		message.RunID,
		message.StepNumber,
		message.Role,
		message.Name,
		message.ToolCallID,
		message.Content,
		message.ToolCalls,
		message.OriginExternal,
		message.CreatedAt,
	)
	return err
}

// GetMessagesByRunID retrieves a run's messages in append order.
func GetMessagesByRunID(ctx context.Context, db sqlscan.Querier, runID string) ([]Message, error) {
	query := `SELECT id, run_id, step_number, role, name, tool_call_id, content, tool_calls, origin_external, created_at FROM messages WHERE run_id = ? ORDER BY created_at, step_number`
	var messages []Message
	if err := sqlscan.Select(ctx, db, &messages, query, runID); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateToolExecution inserts a tool execution record.
func CreateToolExecution(ctx context.Context, db Execer, execution *ToolExecution) error {
	if execution.ID == "" {
		execution.ID = uuid.New().String()
	}
	if execution.CreatedAt.IsZero() {
		execution.CreatedAt = time.Now()
	}

	query := `INSERT INTO tool_executions (id, run_id, step_number, tool_name, tool_call_id, input, output, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		execution.ID,
		execution.RunID,
		execution.StepNumber,
		execution.ToolName,
		execution.ToolCallID,
		execution.Input,
		execution.Output,
		execution.Error,
		execution.DurationMs,
		execution.CreatedAt,
	)
	return err
}

// GetToolExecutionsByRunID retrieves a run's tool executions in order.
func GetToolExecutionsByRunID(ctx context.Context, db sqlscan.Querier, runID string) ([]ToolExecution, error) {
	query := `SELECT id, run_id, step_number, tool_name, tool_call_id, input, output, error, duration_ms, created_at FROM tool_executions WHERE run_id = ? ORDER BY created_at`
	var executions []ToolExecution
	if err := sqlscan.Select(ctx, db, &executions, query, runID); err != nil {
		return nil, err
	}
	return executions, nil
}
