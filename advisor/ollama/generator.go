package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"mealmind/advisor"
	"mealmind/tools"
)

// llmClient is the slice of Client the generator needs. Tests substitute a
// scripted implementation.
type llmClient interface {
	Invoke(ctx context.Context, prompt Prompt) (Response, error)
}

// Generator drives the bounded tool loop: invoke the model, execute any tool
// calls it asks for, feed the results back, and stop at the first final
// content or at maxIterations. It never validates the payload; that is the
// advisor's job.
type Generator struct {
	llm           llmClient
	toolProvider  tools.Provider
	maxIterations int
}

func NewGenerator(llm llmClient, tp tools.Provider, maxIter int) *Generator {
	return &Generator{
		llm:           llm,
		toolProvider:  tp,
		maxIterations: maxIter,
	}
}

func (g *Generator) Name() string { return "ollama" }

// Generate runs the tool loop for one action and returns the model's final
// payload bytes.
func (g *Generator) Generate(ctx context.Context, action advisor.Action, req advisor.Request) ([]byte, error) {
	task := advisor.BuildTask(action, req)
	prompt := NewPrompt(advisor.SystemPrompt, task, g.toolProvider)

	slog.Info("OLLAMA: Starting run", "action", action, "tools", len(prompt.Tools))

	for iter := 0; iter < g.maxIterations; iter++ {
		res, err := g.llm.Invoke(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to invoke LLM: %w", err)
		}

		slog.Info("OLLAMA: Response received",
			"iteration", iter+1,
			"content_length", len(res.Content),
			"tool_calls", len(res.ToolCalls),
		)

		// Final content path.
		if len(res.ToolCalls) == 0 && res.Content != "" {
			return []byte(res.Content), nil
		}

		if len(res.ToolCalls) == 0 {
			return nil, fmt.Errorf("ollama: no tool calls and no content in response")
		}

		for _, call := range dedupeToolCalls(res.ToolCalls) {
			slog.Info("OLLAMA: Handling tool call", "name", call.Name, "iteration", iter+1)

			tool, err := g.toolProvider.GetTool(call.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to get tool %q: %w", call.Name, err)
			}

			result, err := tool.Run(ctx, call.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to run tool %q: %w", call.Name, err)
			}

			payload, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool result: %w", err)
			}

			prompt.Messages = append(prompt.Messages, Message{
				Role:    "tool",
				Name:    tool.Name(),
				Content: string(payload),
			})
		}
	}

	return nil, fmt.Errorf("ollama: no final content after %d iterations", g.maxIterations)
}
