package executor

import (
	"time"
)

// LoopConfig bounds a single run. It is constructed once per run and passed
// by value; there are no process-wide defaults. In particular MaxSteps has no
// fallback: every caller chooses its own ceiling or the run refuses to start.
type LoopConfig struct {
	// MaxSteps is the hard ceiling on loop iterations, checked strictly
	// before each step starts so it bounds cost and side effects, not just
	// output length. Required, positive.
	MaxSteps int

	// MaxResultChars caps any externally sourced text (tool results, final
	// answers, dynamic tool descriptions) before it enters conversation
	// state. Required, positive.
	MaxResultChars int

	// CallTimeout bounds each model and tool invocation. Zero means no
	// per-call timeout; cancellation of the run context still applies.
	CallTimeout time.Duration
}

// Validate rejects configurations that would leave the loop unbounded.
func (c LoopConfig) Validate() error {
	if c.MaxSteps <= 0 {
		return ErrMaxStepsRequired
	}
	if c.MaxResultChars <= 0 {
		return ErrMaxResultCharsRequired
	}
	return nil
}
