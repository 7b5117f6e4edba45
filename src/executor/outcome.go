package executor

import (
	"github.com/elee1766/drover/src/aisdk"
)

// RunStatus is the terminal status of a run. Every status is terminal; a
// finished run never transitions again.
type RunStatus string

const (
	// StatusCompleted means the model produced a final answer.
	StatusCompleted RunStatus = "completed"
	// StatusLimitExceeded means the step ceiling was reached before a final
	// answer. A policy stop, not a crash: the caller may resume with a fresh
	// budget.
	StatusLimitExceeded RunStatus = "limit_exceeded"
	// StatusTimedOut means an external call exceeded the call timeout.
	StatusTimedOut RunStatus = "timed_out"
	// StatusCancelled means the run context was cancelled.
	StatusCancelled RunStatus = "cancelled"
	// StatusToolError means a tool failed, an unknown tool was requested, or
	// a collaborator call failed outright.
	StatusToolError RunStatus = "tool_error"
)

// RunOutcome is the result of a run. FinalState always carries the messages
// accumulated up to the stopping point, whatever the status, so a caller can
// inspect exactly what happened; partial progress is never discarded.
type RunOutcome struct {
	Status RunStatus
	// Answer is set when Status == StatusCompleted.
	Answer string
	// Detail carries the failure description for StatusToolError.
	Detail     string
	StepsTaken int
	FinalState *aisdk.Conversation
}
