package storage

import "time"

// Run is one agent loop run. Status starts as "running" and is overwritten
// with the terminal status when the run finishes.
type Run struct {
	ID         string    `json:"id" db:"id"`
	Status     string    `json:"status" db:"status"`
	Answer     string    `json:"answer" db:"answer"`
	Detail     string    `json:"detail" db:"detail"`
	StepsTaken int       `json:"steps_taken" db:"steps_taken"`
	Model      string    `json:"model" db:"model"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Message is one conversation message as it was appended to run state. The
// content of tool messages is the guarded text, never raw tool output.
type Message struct {
	ID             string    `json:"id" db:"id"`
	RunID          string    `json:"run_id" db:"run_id"`
	StepNumber     int       `json:"step_number" db:"step_number"`
	Role           string    `json:"role" db:"role"`
	Name           string    `json:"name" db:"name"`
	ToolCallID     string    `json:"tool_call_id" db:"tool_call_id"`
	Content        string    `json:"content" db:"content"`
	ToolCalls      *string   `json:"tool_calls,omitempty" db:"tool_calls"` // JSON array of tool calls
	OriginExternal bool      `json:"origin_external" db:"origin_external"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ToolExecution records one tool invocation, successful or not.
type ToolExecution struct {
	ID         string    `json:"id" db:"id"`
	RunID      string    `json:"run_id" db:"run_id"`
	StepNumber int       `json:"step_number" db:"step_number"`
	ToolName   string    `json:"tool_name" db:"tool_name"`
	ToolCallID string    `json:"tool_call_id" db:"tool_call_id"`
	Input      string    `json:"input" db:"input"`
	Output     string    `json:"output" db:"output"`
	Error      string    `json:"error" db:"error"`
	DurationMs int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
