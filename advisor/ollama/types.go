// Package ollama is a generative backend speaking Ollama's native chat and
// tool-calling API. It runs a bounded tool loop so the model can ground
// itself in catalog prices and inventory before answering.
package ollama

import (
	"mealmind/tools"
)

// Message is one chat turn in Ollama's wire format. Name is set only on
// role "tool" messages.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// ToolSchema describes one callable function to the model.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Tool wraps a function schema in Ollama's tool envelope.
type Tool struct {
	Type     string     `json:"type"`
	Function ToolSchema `json:"function"`
}

// Prompt is the conversation state carried across tool-loop iterations.
type Prompt struct {
	Messages []Message `json:"messages"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// ToolCall is the model asking for one tool invocation.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Response is the model's reply for one iteration: either tool calls to
// execute or final content.
type Response struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// HasToolResult reports whether a result from the named tool is already in
// the conversation.
func (p Prompt) HasToolResult(name string) bool {
	for _, m := range p.Messages {
		if m.Role == "tool" && m.Name == name {
			return true
		}
	}
	return false
}

// NewPrompt builds the initial conversation: system contract, user task, and
// the provider's tools converted to Ollama's schema.
func NewPrompt(system, task string, tp tools.Provider) Prompt {
	available := tp.GetTools()

	ollamaTools := make([]Tool, len(available))
	for i, tool := range available {
		schema := tool.InputSchema()
		parameters := map[string]any{
			"type":       "object",
			"properties": schema.Properties,
		}
		if len(schema.Required) > 0 {
			parameters["required"] = schema.Required
		}

		ollamaTools[i] = Tool{
			Type: "function",
			Function: ToolSchema{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  parameters,
			},
		}
	}

	return Prompt{
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: task},
		},
		Tools: ollamaTools,
	}
}

// dedupeToolCalls drops repeat calls to the same tool within one response.
// Both tools are read-only, so a repeat call can never return new data.
func dedupeToolCalls(calls []ToolCall) []ToolCall {
	seen := make(map[string]bool, len(calls))
	kept := calls[:0]
	for _, c := range calls {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		kept = append(kept, c)
	}
	return kept
}
