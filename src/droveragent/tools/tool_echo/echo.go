package tool_echo

import (
	"context"

	"github.com/elee1766/drover/src/agent"
)

// Tool name constant
const Name = "echo"

const echoPrompt = `Returns the provided text unchanged. Useful for sanity checks and for carrying a value forward verbatim.`

// EchoInput represents the parameters for echo
type EchoInput struct {
	Text string `json:"text" required:"true" description:"The text to echo back"`
}

// EchoOutput represents the response from echo
type EchoOutput struct {
	Text string `json:"text" description:"The echoed text"`
}

// Tool returns the echo tool definition.
func Tool() (agent.Tool, error) {
	return agent.NewGenericTool(Name, echoPrompt, echoHandler)
}

func echoHandler(ctx context.Context, input EchoInput) (EchoOutput, error) {
	return EchoOutput{Text: input.Text}, nil
}
