package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elee1766/drover/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// FuncTool is a tool backed by a plain executor function. It is the shape
// used for tools whose definition arrives at runtime, such as tools served
// by a remote tool server, where no Go input struct exists to reflect a
// schema from.
type FuncTool struct {
	Type        string             `json:"type"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
	// External marks the description as dynamically sourced. Builders of
	// external tools must sanitize Description before constructing the
	// FuncTool; this flag records that obligation for downstream checks.
	External bool         `json:"-"`
	Executor ToolExecutor `json:"-"`
}

func (t *FuncTool) GetType() string {
	if t.Type == "" {
		return "function"
	}
	return t.Type
}

func (t *FuncTool) GetName() string { return t.Name }

func (t *FuncTool) GetDescription() string { return t.Description }

func (t *FuncTool) GetParameters() *jsonschema.Schema { return t.Parameters }

func (t *FuncTool) DescriptionIsExternal() bool { return t.External }

func (t *FuncTool) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	if t.Executor == nil {
		return nil, fmt.Errorf("tool %s has no executor", t.Name)
	}
	return t.Executor(ctx, call)
}

// MarshalJSON serializes only the declarative fields.
func (t *FuncTool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string             `json:"type"`
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Parameters  *jsonschema.Schema `json:"parameters"`
	}{
		Type:        t.GetType(),
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	})
}

var (
	_ Tool                = (*FuncTool)(nil)
	_ ExternallyDescribed = (*FuncTool)(nil)
)
