// Package gemini is a generative backend using the Google Gemini API with
// JSON response mode, so the model is constrained to emit a single JSON
// object rather than prose.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"mealmind"
	"mealmind/advisor"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator sends one generation request per advisor action.
type Generator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGenerator creates a Gemini-backed generator. Close must be called when
// the generator is no longer needed.
func NewGenerator(ctx context.Context, apiKey string, cfg mealmind.ModelConfig) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.ModelID)
	model.SetMaxOutputTokens(cfg.MaxTokens)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(advisor.SystemPrompt)},
	}

	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Name() string { return "gemini" }

// Generate sends the task and returns the model's JSON bytes.
func (g *Generator) Generate(ctx context.Context, action advisor.Action, req advisor.Request) ([]byte, error) {
	task := advisor.BuildTask(action, req)

	resp, err := g.model.GenerateContent(ctx, genai.Text(task))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("gemini: generated content is not text")
	}

	slog.Info("GEMINI: Content generated", "action", action, "length", len(text))
	return []byte(text), nil
}

// Close releases the underlying client connection.
func (g *Generator) Close() error {
	return g.client.Close()
}
