package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/elee1766/drover/src/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not reapply the schema.
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := &Run{Model: "test/model"}
	require.NoError(t, CreateRun(ctx, db.DB(), run))
	require.NotEmpty(t, run.ID)
	assert.Equal(t, "running", run.Status)

	require.NoError(t, FinishRun(ctx, db.DB(), run.ID, "completed", "the answer", "", 3))

	got, err := GetRunByID(ctx, db.DB(), run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, "the answer", got.Answer)
	assert.Equal(t, 3, got.StepsTaken)

	missing, err := GetRunByID(ctx, db.DB(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	older := &Run{CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Run{CreatedAt: time.Now()}
	require.NoError(t, CreateRun(ctx, db.DB(), older))
	require.NoError(t, CreateRun(ctx, db.DB(), newer))

	runs, err := ListRuns(ctx, db.DB(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}

func TestMessagesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := &Run{}
	require.NoError(t, CreateRun(ctx, db.DB(), run))

	toolCalls := `[{"id":"c1","type":"function","function":{"name":"echo","arguments":"{}"}}]`
	require.NoError(t, CreateMessage(ctx, db.DB(), &Message{
		RunID:     run.ID,
		Role:      "assistant",
		ToolCalls: &toolCalls,
		CreatedAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, CreateMessage(ctx, db.DB(), &Message{
		RunID:          run.ID,
		Role:           "tool",
		Name:           "echo",
		ToolCallID:     "c1",
		Content:        "pong",
		OriginExternal: true,
	}))

	messages, err := GetMessagesByRunID(ctx, db.DB(), run.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[0].Role)
	require.NotNil(t, messages[0].ToolCalls)
	assert.Equal(t, toolCalls, *messages[0].ToolCalls)
	assert.Equal(t, "tool", messages[1].Role)
	assert.True(t, messages[1].OriginExternal)
}

func TestToolExecutionsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	run := &Run{}
	require.NoError(t, CreateRun(ctx, db.DB(), run))

	require.NoError(t, CreateToolExecution(ctx, db.DB(), &ToolExecution{
		RunID:      run.ID,
		ToolName:   "echo",
		ToolCallID: "c1",
		Input:      `{"text":"ping"}`,
		Output:     "pong",
		DurationMs: 12,
	}))

	executions, err := GetToolExecutionsByRunID(ctx, db.DB(), run.ID)
	require.NoError(t, err)
	require.Len(t, executions, 1)
	assert.Equal(t, "echo", executions[0].ToolName)
	assert.Equal(t, int64(12), executions[0].DurationMs)
}

func TestRecorderPersistsRunTranscript(t *testing.T) {
	db := openTestDB(t)
	recorder := NewRecorder(db, "test/model", nil)

	base := func(step int) executor.BaseEvent {
		return executor.BaseEvent{
			Type:       executor.EventAssistantMessage,
			Timestamp:  time.Now(),
			RunID:      "run-1",
			StepNumber: step,
		}
	}

	require.NoError(t, recorder.Process(&executor.AssistantMessageEvent{
		BaseEvent: base(0),
		Content:   "calling a tool",
	}))
	require.NoError(t, recorder.Process(&executor.ToolCallResponseEvent{
		BaseEvent: base(0),
		ToolName:  "echo",
		ToolID:    "c1",
		Content:   "pong",
		Duration:  5 * time.Millisecond,
	}))
	require.NoError(t, recorder.Process(&executor.ToolCallErrorEvent{
		BaseEvent: base(1),
		ToolName:  "echo",
		ToolID:    "c2",
		Error:     errors.New("boom"),
		Duration:  time.Millisecond,
	}))
	require.NoError(t, recorder.Process(&executor.RunCompleteEvent{
		BaseEvent:  base(2),
		Status:     executor.StatusCompleted,
		Answer:     "done",
		StepsTaken: 2,
	}))

	ctx := context.Background()
	run, err := GetRunByID(ctx, db.DB(), "run-1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "done", run.Answer)
	assert.Equal(t, "test/model", run.Model)

	messages, err := GetMessagesByRunID(ctx, db.DB(), "run-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "assistant", messages[0].Role)
	assert.Equal(t, "tool", messages[1].Role)

	executions, err := GetToolExecutionsByRunID(ctx, db.DB(), "run-1")
	require.NoError(t, err)
	require.Len(t, executions, 2)
	assert.Empty(t, executions[0].Error)
	assert.Equal(t, "boom", executions[1].Error)
}
