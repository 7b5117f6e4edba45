package aisdk

// ActionKind discriminates the two actions a model may propose.
type ActionKind string

const (
	ActionFinalAnswer ActionKind = "final_answer"
	ActionToolCall    ActionKind = "tool_call"
)

// Action is the model's proposed next step: either a final answer ending the
// run, or a tool call to execute and feed back.
type Action struct {
	Kind ActionKind
	// Answer is set when Kind == ActionFinalAnswer.
	Answer string
	// ToolCalls is set when Kind == ActionToolCall. Assistant content that
	// accompanied the calls, if any, is carried alongside.
	ToolCalls []ToolCall
	Content   string
}

// FinalAnswer constructs a final-answer action.
func FinalAnswer(text string) *Action {
	return &Action{Kind: ActionFinalAnswer, Answer: text}
}

// ToolCallAction constructs a tool-call action.
func ToolCallAction(content string, calls []ToolCall) *Action {
	return &Action{Kind: ActionToolCall, Content: content, ToolCalls: calls}
}
