package executor

import "errors"

var (
	// Config validation errors
	ErrMaxStepsRequired       = errors.New("max steps must be set explicitly and be positive")
	ErrMaxResultCharsRequired = errors.New("max result chars must be positive")
	ErrProposerRequired       = errors.New("model proposer is required")

	// Execution errors
	ErrUnknownTool = errors.New("unknown tool")
)
