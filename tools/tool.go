package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// Tool is a read-only operation the generative tier (or the UI layer) may
// invoke to ground itself in local data before answering.
type Tool interface {
	Name() string
	Title() string
	Description() string
	InputSchema() *jsonschema.Schema
	OutputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

type Call struct {
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id,omitempty"`
}
